package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/classtrack/classtrack-api/pkg/config"
)

// Mailer is the outbound mail capability the core depends on. Delivery
// failures are reported as errors and never retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New selects a Mailer implementation from configuration. Unknown providers
// fall back to the console mailer so enrollment flows keep working in
// development.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGrid(cfg.APIKey, cfg.FromName, cfg.FromEmail)
	default:
		return NewConsole(logger)
	}
}

// Console is a log-only Mailer for development and tests.
type Console struct {
	logger *zap.Logger
}

// NewConsole constructs a console mailer.
func NewConsole(logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{logger: logger}
}

// Send logs the message instead of delivering it.
func (m *Console) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("outbound email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}
