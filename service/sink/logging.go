package sink

import (
	"context"
	"fmt"
	"github.com/brityrelay/smtp-relay/service/registry"
	"github.com/brityrelay/smtp-relay/util"
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

func (l logging) Send(ctx context.Context, acct registry.Account, p Payload) (resp []byte, err error) {
	resp, err = l.svc.Send(ctx, acct, p)
	l.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("sink.Send(account=%s, from=%s, to=%s, subject=%s, attachments=%d): err=%s", acct.Id, p.From, p.To, p.Subject, len(p.Attachments), err))
	return
}

func (l logging) Check(ctx context.Context) (err error) {
	err = l.svc.Check(ctx)
	l.log.Log(ctx, util.LogLevel(err), fmt.Sprintf("sink.Check(): err=%s", err))
	return
}
