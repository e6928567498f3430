package smtp

import (
	"context"
	"github.com/brityrelay/smtp-relay/service"
	"github.com/emersion/go-smtp"
	"io"
)

type session struct {
	svc       service.Service
	dataLimit int64
	//
	from  string
	rcpts []string
}

func newSession(svc service.Service, dataLimit int64) smtp.Session {
	return &session{
		svc:       svc,
		dataLimit: dataLimit,
	}
}

func (s *session) Reset() {
	s.from = ""
	s.rcpts = nil
	return
}

func (s *session) Logout() (err error) {
	return
}

func (s *session) Mail(from string, opts *smtp.MailOptions) (err error) {
	s.from = from
	return
}

func (s *session) Rcpt(to string, opts *smtp.RcptOptions) (err error) {
	s.rcpts = append(s.rcpts, to)
	return
}

// Data always acknowledges positively. Delivery here is at most once and best
// effort, a downstream failure must not cause the upstream transport to retry
// or bounce. Failures are logged by the service decorators.
func (s *session) Data(r io.Reader) (err error) {
	r = io.LimitReader(r, s.dataLimit)
	_, _ = s.svc.Submit(context.TODO(), s.from, s.rcpts, r)
	return
}
