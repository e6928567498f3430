package parser

import (
	"encoding/base64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

const msgPlain = `From: John Doe <john@example.com>
To: Jane Smith <jane.smith@example.com>
Subject: Meeting Notes
MIME-Version: 1.0
Content-Type: text/plain; charset="UTF-8"
Content-Transfer-Encoding: 7bit

Hi Jane,

Best regards,
John`

const msgMultipart = `From: John Doe <john@example.com>
To: Jane Smith <jane.smith@example.com>
Subject: Report
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="BOUNDARY"

--BOUNDARY
Content-Type: text/plain; charset="UTF-8"

Please find the report attached.
--BOUNDARY
Content-Type: text/plain; name="a.txt"
Content-Disposition: attachment; filename="a.txt"
Content-Transfer-Encoding: base64

aGVsbG8gd29ybGQ=
--BOUNDARY--
`

func TestSvc_Parse(t *testing.T) {
	cases := map[string]struct {
		in  string
		out Message
		err error
	}{
		"empty": {
			in:  "",
			err: ErrParse,
		},
		"plain": {
			in: msgPlain,
			out: Message{
				Subject: "Meeting Notes",
			},
		},
		"no subject": {
			in: strings.Replace(msgPlain, "Subject: Meeting Notes\n", "", 1),
			out: Message{
				Subject: "No Subject",
			},
		},
		"explicit account directive": {
			in: strings.Replace(msgPlain, "MIME-Version:", "X-Brityworks-Account: acc_b\nMIME-Version:", 1),
			out: Message{
				Subject:   "Meeting Notes",
				Directive: "acc_b",
			},
		},
		"fan out directive, any case": {
			in: strings.Replace(msgPlain, "MIME-Version:", "X-Brityworks-Account: aLl\nMIME-Version:", 1),
			out: Message{
				Subject:   "Meeting Notes",
				FanOutAll: true,
			},
		},
	}
	svc := NewLogging(NewService(), slog.Default())
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			msg, err := svc.Parse(strings.NewReader(c.in))
			assert.ErrorIs(t, err, c.err)
			if c.err == nil {
				assert.Equal(t, c.out.Subject, msg.Subject)
				assert.Equal(t, c.out.Directive, msg.Directive)
				assert.Equal(t, c.out.FanOutAll, msg.FanOutAll)
				assert.Equal(t, c.in, msg.Raw)
			}
		})
	}
}

func TestSvc_Parse_Attachments(t *testing.T) {
	svc := NewService()
	msg, err := svc.Parse(strings.NewReader(msgMultipart))
	require.Nil(t, err)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "a.txt", msg.Attachments[0].FileName)
	content, err := base64.StdEncoding.DecodeString(msg.Attachments[0].Content)
	require.Nil(t, err)
	assert.Equal(t, []byte("hello world"), content)
	// the full original message text is still carried as the body
	assert.Equal(t, msgMultipart, msg.Raw)
}

func TestSvc_Parse_InvalidUtf8NotFatal(t *testing.T) {
	svc := NewService()
	in := msgPlain + string([]byte{0xff, 0xfe})
	msg, err := svc.Parse(strings.NewReader(in))
	require.Nil(t, err)
	assert.Equal(t, "Meeting Notes", msg.Subject)
	assert.Contains(t, msg.Raw, "�")
}
