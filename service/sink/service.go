package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/brityrelay/smtp-relay/config"
	"github.com/brityrelay/smtp-relay/service/parser"
	"github.com/brityrelay/smtp-relay/service/registry"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Payload is the variable portion of a vendor send request. Everything else in
// the request document is constant.
type Payload struct {
	From        string
	To          string
	Subject     string
	RawContent  string
	Attachments []parser.Attachment
}

type Service interface {

	// Send delivers one message on behalf of the given account, replaying its
	// captured cookies and headers. Returns the vendor response body on 2xx.
	// Exactly one attempt is made, failures are never retried here.
	Send(ctx context.Context, acct registry.Account, p Payload) (resp []byte, err error)

	// Check probes the vendor origin for reachability.
	Check(ctx context.Context) (err error)
}

var ErrSend = errors.New("failed to reach the vendor")
var ErrVendor = errors.New("vendor rejected the send request")

type svc struct {
	uri       string
	client    *http.Client
	cacheHdrs *expirable.LRU[string, http.Header]
}

func NewService(cfg config.VendorConfig) Service {
	return svc{
		uri: cfg.Uri,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cacheHdrs: expirable.NewLRU[string, http.Header](int(cfg.Cache.Size), nil, cfg.Cache.Ttl),
	}
}

func (s svc) Send(ctx context.Context, acct registry.Account, p Payload) (resp []byte, err error) {
	var reqData []byte
	reqData, err = json.Marshal(newVendorRequest(p))
	var req *http.Request
	if err == nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, s.uri, bytes.NewReader(reqData))
	}
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSend, err)
		return
	}
	req.Header = s.headers(acct).Clone()
	var httpResp *http.Response
	httpResp, err = s.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSend, err)
		return
	}
	defer httpResp.Body.Close()
	resp, err = io.ReadAll(httpResp.Body)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrSend, err)
		return
	}
	if httpResp.StatusCode/100 != 2 {
		err = fmt.Errorf("%w: status=%d, response=%s", ErrVendor, httpResp.StatusCode, string(resp))
		resp = nil
	}
	return
}

func (s svc) Check(ctx context.Context) (err error) {
	var u *url.URL
	u, err = url.Parse(s.uri)
	var req *http.Request
	if err == nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodHead, u.Scheme+"://"+u.Host+"/", nil)
	}
	var resp *http.Response
	if err == nil {
		resp, err = s.client.Do(req)
	}
	switch err {
	case nil:
		// any status code proves reachability
		resp.Body.Close()
	default:
		err = fmt.Errorf("%w: %s", ErrSend, err)
	}
	return
}

// headers returns the prepared header set for the account, rebuilt at most
// once per cache TTL so credential updates converge without invalidation.
func (s svc) headers(acct registry.Account) (hdrs http.Header) {
	hdrs, found := s.cacheHdrs.Get(acct.Id)
	if found {
		return
	}
	hdrs = make(http.Header, len(acct.Headers)+1)
	for k, v := range acct.Headers {
		hdrs.Set(k, v)
	}
	if len(acct.Cookies) > 0 {
		var sb strings.Builder
		for k, v := range acct.Cookies {
			if sb.Len() > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(v)
		}
		hdrs.Set("Cookie", sb.String())
	}
	if hdrs.Get("Content-Type") == "" {
		hdrs.Set("Content-Type", "application/json;charset=UTF-8")
	}
	s.cacheHdrs.Add(acct.Id, hdrs)
	return
}
