package postmark

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/changenotify/core/email"
)

// Client sends plain-text notifications through Postmark's transactional API.
type Client struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark-backed email sender. A missing server token is not a
// construction error; SendEmail reports it as email.ErrMissingCredential.
func New(cfg Config) (*Client, error) {
	if cfg.SenderEmail != "" {
		if _, err := mail.ParseAddress(cfg.SenderEmail); err != nil {
			return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
		}
	}

	pc := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		pc.BaseURL = cfg.BaseURL
	}

	return &Client{client: pc, config: cfg}, nil
}

// SendEmail implements EmailSender. Tracking stays off: these are plain-text
// service notifications.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if c.config.ServerToken == "" {
		return errors.Join(email.ErrFailedToSendEmail, email.ErrMissingCredential)
	}

	from := params.From
	if from == "" {
		from = c.config.SenderEmail
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     from,
		ReplyTo:  c.config.ReplyTo,
		To:       params.SendTo,
		Subject:  params.Subject,
		Tag:      params.Tag,
		TextBody: params.BodyText,
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
