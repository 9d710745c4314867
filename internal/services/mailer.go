package services

import (
	"regexp"

	"gopkg.in/gomail.v2"
)

type EmailSender interface {
	Send(to, subject, htmlBody string) error
	Verify() error
}

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     username,
		fromName: "TechRepair Service",
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", htmlTagPattern.ReplaceAllString(htmlBody, ""))
	msg.AddAlternative("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}

// Verify dials the SMTP server without sending anything.
func (m *SMTPMailer) Verify() error {
	closer, err := m.dialer.Dial()
	if err != nil {
		return err
	}
	return closer.Close()
}
