// Package mailer sends outgoing mail: one-time recovery codes to
// administrators and contact-form enquiries to the site owner.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikhlashousing/propertycms/internal/logging"
	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("no recipients specified")

// Email is a plain-text message.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender delivers an Email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// SMTPConfig holds the dialer settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through an SMTP relay with gomail.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// dialAndSend is a seam for testing gomail.Dialer.DialAndSend.
var dialAndSend = func(d *gomail.Dialer, m ...*gomail.Message) error {
	return d.DialAndSend(m...)
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := dialAndSend(m.dialer, m.message(email)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) message(email Email) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To...)
	if email.ReplyTo != "" {
		msg.SetHeader("Reply-To", email.ReplyTo)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)
	return msg
}

// LogMailer stands in when no SMTP relay is configured. It records that a
// message would have been sent without writing the body to the log.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("module", "mailer")}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}
	m.logger.Warn(ctx, "smtp not configured, email dropped", "to", email.To, "subject", email.Subject)
	return nil
}

// New returns an SMTPMailer when cfg names a host and a LogMailer otherwise.
func New(cfg SMTPConfig, logger logging.Logger) Sender {
	if cfg.Host == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}
