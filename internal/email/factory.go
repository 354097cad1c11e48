package email

import (
	"context"

	"go.uber.org/zap"

	"founder-assessment/internal/config"
)

// FromConfig construye el Sender segun EMAIL_PROVIDER. Si el proveedor no se
// puede inicializar devuelve un sender deshabilitado y lo deja en el log.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.EmailProvider {
	case config.EmailProviderSES:
		sender, err := NewSESSender(ctx, cfg.AWSRegion, cfg.SESFrom)
		if err != nil {
			logger.Warn("ses sender init failed", zap.Error(err))
			return NewDisabledSender("ses sender not configured")
		}
		return sender
	case config.EmailProviderSMTP:
		if cfg.SMTPHost == "" {
			logger.Warn("SMTP_HOST not set, report delivery disabled")
			return NewDisabledSender("email sender not configured")
		}
		sender, err := NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
			return NewDisabledSender("email sender not configured")
		}
		return sender
	default:
		return NewDisabledSender("email delivery disabled")
	}
}
