package smtp

import (
	"context"
	"fmt"
	"github.com/brityrelay/smtp-relay/util"
	"github.com/emersion/go-smtp"
	"io"
	"log/slog"
)

type sessionLogging struct {
	s   smtp.Session
	log *slog.Logger
}

func NewSessionLogging(s smtp.Session, log *slog.Logger) smtp.Session {
	return sessionLogging{
		s:   s,
		log: log,
	}
}

func (sl sessionLogging) Reset() {
	sl.s.Reset()
	sl.log.Debug("session.Reset()")
	return
}

func (sl sessionLogging) Logout() (err error) {
	err = sl.s.Logout()
	sl.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("session.Logout(): err=%s", err))
	return
}

func (sl sessionLogging) Mail(from string, opts *smtp.MailOptions) (err error) {
	err = sl.s.Mail(from, opts)
	sl.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("session.Mail(from=%s): err=%s", from, err))
	return
}

func (sl sessionLogging) Rcpt(to string, opts *smtp.RcptOptions) (err error) {
	err = sl.s.Rcpt(to, opts)
	sl.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("session.Rcpt(to=%s): err=%s", to, err))
	return
}

func (sl sessionLogging) Data(r io.Reader) (err error) {
	err = sl.s.Data(r)
	sl.log.Log(context.TODO(), util.LogLevel(err), fmt.Sprintf("session.Data(): err=%s", err))
	return
}
