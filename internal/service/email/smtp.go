package email

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/yourusername/datasec-api/internal/config"
)

// SMTPChannel sends a plain-text message over configured SMTP transport.
type SMTPChannel struct {
	host   string
	from   string
	dialer *gomail.Dialer
}

func NewSMTPChannel(cfg config.EmailConfig) *SMTPChannel {
	c := &SMTPChannel{
		host: cfg.SMTPHost,
		from: cfg.From,
	}
	if cfg.SMTPHost != "" {
		port := cfg.SMTPPort
		if port == 0 {
			port = 587
		}
		c.dialer = gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return c
}

func (c *SMTPChannel) Name() string {
	return "smtp"
}

func (c *SMTPChannel) Configured() bool {
	return c.dialer != nil
}

func (c *SMTPChannel) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	if err := c.dialer.DialAndSend(m); err != nil {
		return &ChannelError{Err: fmt.Errorf("smtp send failed: %w", err)}
	}
	log.Printf("[SMTPChannel] send ok to=%s", msg.To)
	return nil
}
