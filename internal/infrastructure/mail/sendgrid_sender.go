package mail

import (
	"context"
	"fmt"

	"clinic-backoffice/config"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	log       *logrus.Logger
}

func NewSendGridSender(cfg config.MailConfig, log *logrus.Logger) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(msg.ToName, NormalizeRecipient(msg.To))

	plain := msg.Body
	if plain == "" {
		plain = msg.HTML
	}
	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := sgmail.NewSingleEmail(from, msg.Subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("mail: sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail: sendgrid returned status %d", resp.StatusCode)
	}

	s.log.Infof("Email sent via sendgrid: to=%s, subject=%q, status=%d", msg.To, msg.Subject, resp.StatusCode)
	return nil
}
