package email

import "context"

// Attachment is a file carried with an outgoing message. Content is raw
// bytes; transports encode as they need.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outgoing email.
type Message struct {
	From         string
	To           string
	CC           string
	BCC          string
	Subject      string
	Text         string
	Attachments  []Attachment
	BusinessName string
}

// Provider delivers a message. Implementations: the HTTP mail relay and
// direct SMTP for users with their own server configured.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, msg Message) error {
	return nil
}
