package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender submits a single message to a mail transport.
// Implementations must be safe for concurrent use.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams is the transport-neutral message shape.
type SendEmailParams struct {
	From     string // "Display Name <addr>" or bare address; transports may override
	SendTo   string // recipient address (required)
	Subject  string // subject line (required)
	BodyText string // plain-text body (required)
	Tag      string // optional tag for tracking and dev filenames
}

// Validate checks that the required fields are present and the recipient parses
// as an address.
func (p SendEmailParams) Validate() error {
	var missing []string
	if strings.TrimSpace(p.SendTo) == "" {
		missing = append(missing, "SendTo")
	}
	if strings.TrimSpace(p.Subject) == "" {
		missing = append(missing, "Subject")
	}
	if strings.TrimSpace(p.BodyText) == "" {
		missing = append(missing, "BodyText")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidParams, strings.Join(missing, ", "))
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: invalid recipient %q: %v", ErrInvalidParams, p.SendTo, err)
	}
	return nil
}

// SenderFunc adapts a plain function to EmailSender.
type SenderFunc func(ctx context.Context, params SendEmailParams) error

// SendEmail calls f.
func (f SenderFunc) SendEmail(ctx context.Context, params SendEmailParams) error {
	return f(ctx, params)
}
