package email

// Message is a rendered, ready-to-send email.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

func (m *Message) HasRecipients() bool { return len(m.To) > 0 }

func (m *Message) HasContent() bool { return m.TextBody != "" || m.HTMLBody != "" }

// Service is any transport that can send emails. Sends are fire-and-forget
// from the caller's point of view; implementations report errors through the
// callback so the owning row can record them.
type Service interface {
	SendMessage(msg *Message) error
}
