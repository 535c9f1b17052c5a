package mailer

import (
	"fmt"
	"net/smtp"
)

// Sender is the outbound mail capability. The production implementation
// submits over SMTP; tests substitute a fake.
type Sender interface {
	Send(to []string, subject, body string) error
}

// SMTPSender sends HTML mail through an authenticated SMTP submission
// host.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

func (s *SMTPSender) Send(to []string, subject, body string) error {
	if s.Username == "" || s.Password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)

	for _, recipient := range to {
		msg := fmt.Sprintf(
			"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
			s.Username, recipient, subject, htmlBody(subject, body),
		)

		if err := smtp.SendMail(addr, auth, s.Username, []string{recipient}, []byte(msg)); err != nil {
			return err
		}
	}

	return nil
}

func htmlBody(subject, detail string) string {
	return fmt.Sprintf(`
	<html><body>
		<h2 style="color: #d9534f;">%s</h2>
		<p>%s</p>
		<hr>
		<p>On-Call Monitor</p>
	</body></html>
	`, subject, detail)
}
