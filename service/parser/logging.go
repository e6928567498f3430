package parser

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

func (l logging) Parse(src io.Reader) (msg Message, err error) {
	msg, err = l.svc.Parse(src)
	l.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("parser.Parse(subject=%s, directive=%s, fanOutAll=%t, attachments=%d): err=%s", msg.Subject, msg.Directive, msg.FanOutAll, len(msg.Attachments), err))
	return
}
