package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	apperrors "github.com/allisson/grants/internal/errors"
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// Mailer delivers a single access link to its owner.
type Mailer interface {
	Send(ctx context.Context, task DeliveryTask) error
}

// SMTPConfig holds SMTP mailer configuration.
type SMTPConfig struct {
	Host         string
	Port         int
	FallbackPort int
	Username     string
	Password     string
	From         string
	LinkTTL      time.Duration
	ProductNames map[grantsDomain.Tier]string
}

// smtpMailer implements Mailer over SMTP. Delivery tries the primary port
// first and falls back to one alternate port with the same message. The
// transport field carries the per-port delivery function so tests can swap
// out the network hop.
type smtpMailer struct {
	config    SMTPConfig
	logger    *slog.Logger
	transport func(ctx context.Context, port int, msg *mail.Msg) error
}

// NewSMTPMailer creates an SMTP mailer with the given configuration.
func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) Mailer {
	m := &smtpMailer{
		config: config,
		logger: logger,
	}
	m.transport = m.sendVia
	return m
}

// Send delivers the access link. Exhausting both ports returns the last
// error; the grant itself is unaffected either way.
func (s *smtpMailer) Send(ctx context.Context, task DeliveryTask) error {
	msg, err := s.buildMessage(task)
	if err != nil {
		return err
	}

	err = s.transport(ctx, s.config.Port, msg)
	if err == nil {
		return nil
	}

	if s.config.FallbackPort == 0 || s.config.FallbackPort == s.config.Port {
		return apperrors.Wrap(err, "delivery failed")
	}

	s.logger.Warn("primary smtp port failed, trying fallback",
		slog.Int("port", s.config.Port),
		slog.Int("fallback_port", s.config.FallbackPort),
		slog.Any("error", err),
	)

	if err := s.transport(ctx, s.config.FallbackPort, msg); err != nil {
		return apperrors.Wrap(err, "delivery failed on both ports")
	}

	return nil
}

func (s *smtpMailer) buildMessage(task DeliveryTask) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return nil, apperrors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(task.OwnerEmail); err != nil {
		return nil, apperrors.Wrap(err, "invalid recipient address")
	}

	msg.Subject(subjectForTier(task.Tier, s.config.ProductNames))
	msg.SetBodyString(mail.TypeTextPlain, bodyForTask(task, s.config.ProductNames, s.config.LinkTTL))

	return msg, nil
}

func (s *smtpMailer) sendVia(ctx context.Context, port int, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
	}
	// 465 is implicit TLS, everything else negotiates STARTTLS
	if port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.config.Host, opts...)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}

// subjectForTier builds the message subject. Only the product name varies by
// tier.
func subjectForTier(tier grantsDomain.Tier, names map[grantsDomain.Tier]string) string {
	name := names[tier]
	if name == "" {
		name = "your product"
	}
	return fmt.Sprintf("Your access link for %s", name)
}

// bodyForTask builds the plain text message body.
func bodyForTask(task DeliveryTask, names map[grantsDomain.Tier]string, ttl time.Duration) string {
	name := names[task.Tier]
	if name == "" {
		name = "your product"
	}
	hours := int(ttl.Hours())
	if hours < 1 {
		hours = 1
	}
	return fmt.Sprintf(
		"Thank you for your purchase!\n\n"+
			"Product: %s\n\n"+
			"Your single-use access link:\n%s\n\n"+
			"This link is personal, works exactly once, and expires %d hours after issuance.\n",
		name, task.Link, hours,
	)
}
