package sink

import (
	"context"
	"fmt"
	"github.com/brityrelay/smtp-relay/service/registry"
)

type mock struct {
}

// NewMock returns a sink that succeeds unless the account id is "fail"
// (transport error) or "fail_http" (vendor rejection).
func NewMock() Service {
	return mock{}
}

func (m mock) Send(ctx context.Context, acct registry.Account, p Payload) (resp []byte, err error) {
	switch acct.Id {
	case "fail":
		err = fmt.Errorf("%w: connection refused", ErrSend)
	case "fail_http":
		err = fmt.Errorf("%w: status=401, response=unauthorized", ErrVendor)
	default:
		resp = []byte(`{"message":"ok"}`)
	}
	return
}

func (m mock) Check(ctx context.Context) (err error) {
	return
}
