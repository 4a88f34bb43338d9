package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Message is one outbound email. Body is HTML.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message and reports the outcome
// synchronously. Implementations must be safe for concurrent use.
type Sender interface {
	Send(msg Message) error
}

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address, also used as reply-to.
	From string
}

// SMTPSender is a gomail-backed Sender.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a Sender that delivers through the configured
// SMTP server. The dial happens per send; gomail reconnects each time.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers msg through SMTP.
func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("Reply-To", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("X-Mailer", "BookStore Application")
	m.SetBody("text/html", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}
