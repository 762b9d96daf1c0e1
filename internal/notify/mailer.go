package notify

import (
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// EmailSender delivers one rendered email. Implementations must treat every
// send as independently fallible.
type EmailSender interface {
	Send(to, subject, html string) error
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return s.dialer.DialAndSend(m)
}

// LogSender logs emails instead of sending them. Used in development so the
// full flow works without SMTP credentials.
type LogSender struct{}

func (LogSender) Send(to, subject, html string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"bytes":   len(html),
	}).Info("email would be sent")
	return nil
}
