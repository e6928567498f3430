package smtp

import (
	"github.com/brityrelay/smtp-relay/service"
	"github.com/emersion/go-smtp"
)

type backend struct {
	svc       service.Service
	dataLimit int64
}

func NewBackend(svc service.Service, dataLimit int64) smtp.Backend {
	return backend{
		svc:       svc,
		dataLimit: dataLimit,
	}
}

func (b backend) NewSession(c *smtp.Conn) (s smtp.Session, err error) {
	s = newSession(b.svc, b.dataLimit)
	return
}
