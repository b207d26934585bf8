package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// Mailer sends one message to a recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPConfig holds the relay's outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through a single SMTP host, retrying transient
// failures with backoff.
type SMTPMailer struct {
	config SMTPConfig
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// Send delivers the message. Network-level failures are retried a few
// times; permanent SMTP rejections are not.
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	message := strings.Join([]string{
		"From: " + mailer.config.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := net.JoinHostPort(mailer.config.Host, fmt.Sprintf("%d", mailer.config.Port))
	var auth smtp.Auth
	if mailer.config.Username != "" {
		auth = smtp.PlainAuth("", mailer.config.Username, mailer.config.Password, mailer.config.Host)
	}

	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return smtp.SendMail(addr, auth, mailer.config.From, []string{to}, []byte(message))
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransientError),
		retry.OnRetry(func(attempt uint, err error) {
			slog.Default().Warn("retrying report mail delivery",
				slog.Uint64("attempt", uint64(attempt)+1),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp.SendMail > %w", err)
	}
	return nil
}

// isTransientError reports whether a delivery failure is worth retrying:
// network trouble or a 4xx SMTP status.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	message := err.Error()
	return strings.Contains(message, "connection refused") ||
		strings.HasPrefix(message, "4")
}
