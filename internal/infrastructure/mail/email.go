package mail

import (
	"context"
	"fmt"
	"strings"

	"clinic-backoffice/config"

	"github.com/sirupsen/logrus"
)

// EmailSender delivers one email. Implementations can be swapped without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string // Plain text body
	HTML    string // Optional HTML body
}

// NewEmailSender builds the sender selected by cfg.Provider.
func NewEmailSender(ctx context.Context, cfg config.MailConfig, log *logrus.Logger) (EmailSender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "sendgrid":
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("mail: SENDGRID_API_KEY is required for the sendgrid provider")
		}
		return NewSendGridSender(cfg, log), nil
	case "ses":
		return NewSESSenderFromConfig(ctx, cfg, log)
	case "", "stub":
		return NewStubEmailSender(log), nil
	default:
		return nil, fmt.Errorf("mail: unknown provider %q", cfg.Provider)
	}
}

// NormalizeRecipient drops a "+tag" suffix from the local part of an address.
func NormalizeRecipient(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	if i := strings.Index(local, "+"); i != -1 {
		local = local[:i]
	}
	return local + "@" + domain
}

// StubEmailSender logs emails instead of sending them.
type StubEmailSender struct {
	log *logrus.Logger
}

func NewStubEmailSender(log *logrus.Logger) *StubEmailSender {
	return &StubEmailSender{log: log}
}

func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Stub email sender: email not delivered")
	return nil
}
