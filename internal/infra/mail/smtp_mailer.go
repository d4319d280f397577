// Package mail provides the SMTP implementation of the Mailer domain service.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"

	"github.com/pkg/errors"

	"careerconnect/config"
	"careerconnect/internal/domain/service"
)

// smtpMailer delivers mail through a plain SMTP relay. When no SMTP section
// is configured it degrades to logging the message, which keeps local
// development working without a relay.
type smtpMailer struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	var smtpCfg *config.SMTPConfig
	if cfg != nil {
		smtpCfg = cfg.SMTP
	}

	return &smtpMailer{cfg: smtpCfg, logger: logger}
}

// SendOTP delivers a one-time code to the recipient.
func (m *smtpMailer) SendOTP(ctx context.Context, to, code string) error {
	subject := "Your CareerConnect verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in a few minutes.", code)

	return m.send(ctx, to, subject, body)
}

// SendApplicationStatus notifies a candidate about an application status change.
func (m *smtpMailer) SendApplicationStatus(ctx context.Context, to, jobTitle, status string) error {
	subject := fmt.Sprintf("Update on your application: %s", jobTitle)
	body := fmt.Sprintf("The status of your application for %q changed to %s.", jobTitle, status)

	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	if m.cfg == nil || m.cfg.Host == "" {
		m.logger.InfoContext(ctx, "SMTP not configured, logging mail instead",
			slog.String("to", to),
			slog.String("subject", subject),
		)

		return nil
	}

	msg := []byte("From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
