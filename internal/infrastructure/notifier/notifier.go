package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iftihoq/gobank/internal/infrastructure/metrics"
	"github.com/iftihoq/gobank/internal/usecase"
)

// SMTPNotifier sends notifications over SMTP. It implements usecase.Notifier.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

// Config holds SMTP settings.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPNotifier creates a new SMTPNotifier.
func NewSMTPNotifier(cfg Config) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

// Send delivers one email. net/smtp has no context support, so cancellation
// is checked up front and the SMTP dial relies on OS-level timeouts.
func (n *SMTPNotifier) Send(ctx context.Context, recipientEmail, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", recipientEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	return smtp.SendMail(n.addr, n.auth, n.from, []string{recipientEmail}, []byte(msg.String()))
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used when SMTP is disabled.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the notification.
func (n *LogNotifier) Send(ctx context.Context, recipientEmail, subject, body string) error {
	n.logger.Info().
		Str("recipient", recipientEmail).
		Str("subject", subject).
		Str("body", body).
		Msg("notification")

	return nil
}

// InstrumentedNotifier wraps a Notifier with delivery metrics.
type InstrumentedNotifier struct {
	next    usecase.Notifier
	metrics *metrics.Metrics
}

// NewInstrumentedNotifier creates a new InstrumentedNotifier.
func NewInstrumentedNotifier(next usecase.Notifier, m *metrics.Metrics) *InstrumentedNotifier {
	return &InstrumentedNotifier{next: next, metrics: m}
}

// Send delegates to the wrapped notifier and records the outcome.
func (n *InstrumentedNotifier) Send(ctx context.Context, recipientEmail, subject, body string) error {
	err := n.next.Send(ctx, recipientEmail, subject, body)
	if err != nil {
		n.metrics.NotificationsFailed.Inc()
		return err
	}

	n.metrics.NotificationsSent.Inc()
	return nil
}
