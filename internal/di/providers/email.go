package providers

import (
	"github.com/samber/do/v2"

	"github.com/animexapp/animex-server/internal/config"
	"github.com/animexapp/animex-server/internal/email"
	"github.com/animexapp/animex-server/internal/logger"
)

// ProvideMailer provides the outbound mailer. Without SMTP settings the
// server falls back to a no-op mailer so feedback replies still succeed.
func ProvideMailer(i do.Injector) (email.Mailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Email.SMTPHost == "" {
		log.Info("SMTP not configured, feedback reply emails disabled")
		return email.NoopMailer{}, nil
	}

	log.Info("Mailer initialized", "host", cfg.Email.SMTPHost, "port", cfg.Email.SMTPPort)
	return email.NewSMTPMailer(email.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
		UseTLS:   cfg.Email.UseTLS,
	}, log.Logger), nil
}
