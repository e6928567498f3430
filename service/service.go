package service

import (
	"context"
	"github.com/brityrelay/smtp-relay/service/parser"
	"github.com/brityrelay/smtp-relay/service/registry"
	"github.com/brityrelay/smtp-relay/service/sink"
	"github.com/segmentio/ksuid"
	"io"
	"sync"
)

// Outcome is the result of one per-account send attempt.
type Outcome struct {
	AccountId string
	Err       error
}

// Result aggregates all send attempts for one inbound message. Zero attempts
// means no account could be resolved, the message was dropped.
type Result struct {
	Id        string
	Delivered int
	Failed    int
	Outcomes  []Outcome
}

// RelayRequest is a pre-parsed relay order as submitted through the admin API.
type RelayRequest struct {
	Raw         string              `json:"raw_email"`
	Sender      string              `json:"sender_email"`
	Recipient   string              `json:"recipient_email"`
	Subject     string              `json:"subject"`
	AccountId   string              `json:"account_id,omitempty"`
	Attachments []parser.Attachment `json:"attachments"`
}

type Service interface {

	// Submit relays one inbound message: parse, resolve the target accounts,
	// attempt one send per account and aggregate the outcomes. Per-account
	// failures are isolated, the aggregate is for logging only, the caller is
	// expected to acknowledge the inbound transport positively regardless.
	Submit(ctx context.Context, from string, rcpts []string, data io.Reader) (res Result, err error)

	// Relay resolves a single account for the given request and performs one
	// send, returning the vendor response body.
	Relay(ctx context.Context, req RelayRequest) (resp []byte, err error)
}

// Envelope values take precedence over header-derived addresses, these stand
// in when the transport supplied none.
const defaultSender = "unknown_sender@example.com"
const defaultRecipient = "unknown_recipient@example.com"

type svc struct {
	parser parser.Service
	reg    registry.Service
	sink   sink.Service
}

func NewService(p parser.Service, reg registry.Service, s sink.Service) Service {
	return svc{
		parser: p,
		reg:    reg,
		sink:   s,
	}
}

func (s svc) Submit(ctx context.Context, from string, rcpts []string, data io.Reader) (res Result, err error) {
	res.Id = ksuid.New().String()
	var msg parser.Message
	msg, err = s.parser.Parse(data)
	if err != nil {
		return
	}
	sender := from
	if sender == "" {
		sender = defaultSender
	}
	rcpt := defaultRecipient
	if len(rcpts) > 0 {
		rcpt = rcpts[0]
	}
	var accts []registry.Account
	switch msg.FanOutAll {
	case true:
		accts = s.reg.ResolveAll()
	default:
		var acct registry.Account
		acct, err = s.reg.Resolve(msg.Directive, sender)
		if err != nil {
			return
		}
		accts = []registry.Account{acct}
	}
	if len(accts) == 0 {
		err = registry.ErrNoAccount
		return
	}
	res.Outcomes = make([]Outcome, len(accts))
	var wg sync.WaitGroup
	for i, acct := range accts {
		wg.Add(1)
		go func(i int, acct registry.Account) {
			defer wg.Done()
			p := sink.Payload{
				From:        acct.Email, // the impersonated account sends as itself
				To:          rcpt,
				Subject:     msg.Subject,
				RawContent:  msg.Raw,
				Attachments: msg.Attachments,
			}
			_, errSend := s.sink.Send(ctx, acct, p)
			res.Outcomes[i] = Outcome{
				AccountId: acct.Id,
				Err:       errSend,
			}
		}(i, acct)
	}
	wg.Wait()
	for _, o := range res.Outcomes {
		switch o.Err {
		case nil:
			res.Delivered++
		default:
			res.Failed++
		}
	}
	return
}

func (s svc) Relay(ctx context.Context, req RelayRequest) (resp []byte, err error) {
	var acct registry.Account
	acct, err = s.reg.Resolve(req.AccountId, req.Sender)
	if err == nil {
		resp, err = s.sink.Send(ctx, acct, sink.Payload{
			From:        req.Sender,
			To:          req.Recipient,
			Subject:     req.Subject,
			RawContent:  req.Raw,
			Attachments: req.Attachments,
		})
	}
	return
}
