package email

import (
	"gopkg.in/gomail.v2"

	"coachingku_backend/internals/configs"
)

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

var _ Service = (*smtpService)(nil)

// NewSMTPService builds a transport from SMTP_* env vars.
func NewSMTPService() Service {
	host := configs.GetEnv("SMTP_HOST")
	port := configs.GetEnvInt("SMTP_PORT", 587)
	user := configs.GetEnv("SMTP_USER")
	pass := configs.GetEnv("SMTP_PASS")
	from := configs.GetEnv("SMTP_FROM", user)

	return &smtpService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *smtpService) SendMessage(msg *Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		if msg.TextBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		} else {
			m.SetBody("text/html", msg.HTMLBody)
		}
	}
	return s.dialer.DialAndSend(m)
}
