package service

import (
	"context"
	"github.com/brityrelay/smtp-relay/service/registry"
	"io"
)

type mock struct {
}

// NewMock returns a service that reports one delivery unless from is "fail",
// which simulates a message with no resolvable account.
func NewMock() Service {
	return mock{}
}

func (m mock) Submit(ctx context.Context, from string, rcpts []string, data io.Reader) (res Result, err error) {
	_, _ = io.Copy(io.Discard, data)
	switch from {
	case "fail":
		err = registry.ErrNoAccount
	default:
		res.Delivered = 1
		res.Outcomes = []Outcome{
			{AccountId: "acc_a"},
		}
	}
	return
}

func (m mock) Relay(ctx context.Context, req RelayRequest) (resp []byte, err error) {
	switch req.Sender {
	case "fail":
		err = registry.ErrNoAccount
	default:
		resp = []byte(`{"message":"ok"}`)
	}
	return
}
