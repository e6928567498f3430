package parser

import (
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/jhillyerd/enmime"
	"io"
	"strings"
	"unicode/utf8"
)

// Attachment carries a single extracted file. Content is the base64 form of
// the decoded part payload, which is the shape the vendor expects.
type Attachment struct {
	FileName string `json:"filename"`
	Content  string `json:"content"`
}

// Message is the decoded form of one inbound mail message. Raw keeps the full
// original text because the vendor receives the whole message as its body,
// inline parts are never extracted separately.
type Message struct {
	Subject     string
	Directive   string
	FanOutAll   bool
	Attachments []Attachment
	Raw         string
}

type Service interface {
	Parse(src io.Reader) (msg Message, err error)
}

const hdrAccount = "X-Brityworks-Account"
const directiveAll = "ALL"
const defaultSubject = "No Subject"

var ErrParse = errors.New("failed to parse message")

type svc struct {
}

func NewService() Service {
	return svc{}
}

func (s svc) Parse(src io.Reader) (msg Message, err error) {
	var data []byte
	data, err = io.ReadAll(src)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrParse, err)
		return
	}
	msg.Raw = strings.ToValidUTF8(string(data), string(utf8.RuneError))
	var e *enmime.Envelope
	e, err = enmime.ReadEnvelope(strings.NewReader(msg.Raw))
	switch err {
	case nil:
		s.decode(e, &msg)
	default:
		err = fmt.Errorf("%w: %s", ErrParse, err)
	}
	return
}

func (s svc) decode(e *enmime.Envelope, msg *Message) {
	msg.Subject = e.GetHeader("Subject")
	if msg.Subject == "" {
		msg.Subject = defaultSubject
	}
	d := strings.TrimSpace(e.GetHeader(hdrAccount))
	switch {
	case strings.EqualFold(d, directiveAll):
		msg.FanOutAll = true
	default:
		msg.Directive = d
	}
	for _, p := range e.Attachments {
		if p.FileName == "" {
			continue
		}
		if !strings.EqualFold(p.Disposition, "attachment") {
			continue
		}
		msg.Attachments = append(msg.Attachments, Attachment{
			FileName: p.FileName,
			Content:  base64.StdEncoding.EncodeToString(p.Content),
		})
	}
	return
}
