package service

import (
	"context"
	"fmt"
	"github.com/brityrelay/smtp-relay/util"
	"io"
	"log/slog"
)

type logging struct {
	svc Service
	log *slog.Logger
}

func NewLogging(svc Service, log *slog.Logger) Service {
	return logging{
		svc: svc,
		log: log,
	}
}

func (l logging) Submit(ctx context.Context, from string, rcpts []string, data io.Reader) (res Result, err error) {
	res, err = l.svc.Submit(ctx, from, rcpts, data)
	l.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("service.Submit(id=%s, from=%s, rcpts=%v): delivered=%d, failed=%d, err=%s", res.Id, from, rcpts, res.Delivered, res.Failed, err))
	for _, o := range res.Outcomes {
		if o.Err != nil {
			l.log.Error(fmt.Sprintf("service.Submit(id=%s): account=%s: %s", res.Id, o.AccountId, o.Err))
		}
	}
	return
}

func (l logging) Relay(ctx context.Context, req RelayRequest) (resp []byte, err error) {
	resp, err = l.svc.Relay(ctx, req)
	l.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("service.Relay(accountId=%s, sender=%s, recipient=%s): err=%s", req.AccountId, req.Sender, req.Recipient, err))
	return
}
