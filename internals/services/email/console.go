package email

import (
	"coachingku_backend/internals/configs"
	"coachingku_backend/internals/logger"
)

// consoleService logs messages instead of sending — the dev default when no
// SMTP host is configured.
type consoleService struct{}

var _ Service = (*consoleService)(nil)

func NewConsoleService() Service { return &consoleService{} }

func (consoleService) SendMessage(msg *Message) error {
	logger.Log.WithField("to", msg.To).WithField("subject", msg.Subject).
		Info("email (console): " + msg.TextBody)
	return nil
}

// NewFromEnv picks the SMTP transport when configured, console otherwise.
func NewFromEnv() Service {
	if configs.GetEnv("SMTP_HOST") != "" {
		return NewSMTPService()
	}
	return NewConsoleService()
}
