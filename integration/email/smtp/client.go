package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/changenotify/core/email"
)

// Client implements the EmailSender interface using standard SMTP submission.
// Supports STARTTLS, implicit TLS and plain connections and is safe for
// concurrent use: every send opens its own session.
type Client struct {
	config  Config
	auth    smtp.Auth
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates an SMTP-backed email sender. Only transport settings are
// validated; missing credentials are reported at send time.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if cfg.SenderEmail != "" {
		if _, err := mail.ParseAddress(cfg.SenderEmail); err != nil {
			return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{config: cfg, now: time.Now}
	if cfg.Username != "" && cfg.Password != "" {
		c.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	if cfg.RatePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), 1)
	}
	return c, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
func MustNewClient(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail submits params as a plain-text message. The context bounds the
// whole SMTP session, including the rate limiter wait.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if c.auth == nil {
		return errors.Join(email.ErrFailedToSendEmail, email.ErrMissingCredential)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Join(email.ErrFailedToSendEmail, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	message, err := c.buildMessage(params)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	if err := c.send(ctx, params.SendTo, message); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *Client) fromHeader(params email.SendEmailParams) string {
	switch {
	case params.From != "":
		return params.From
	case c.config.SenderEmail != "":
		return c.config.SenderEmail
	default:
		return c.config.Username
	}
}

// buildMessage creates the MIME message with a quoted-printable UTF-8 body.
func (c *Client) buildMessage(params email.SendEmailParams) ([]byte, error) {
	now := c.now()
	headers := [][2]string{
		{"From", c.fromHeader(params)},
		{"To", params.SendTo},
		{"Subject", mime.QEncoding.Encode("utf-8", params.Subject)},
		{"Date", now.Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%d.%s@%s>", now.UnixNano(), strings.ReplaceAll(params.Tag, " ", "_"), c.config.Host)},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/plain; charset="UTF-8"`},
		{"Content-Transfer-Encoding", "quoted-printable"},
	}
	if c.config.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", c.config.ReplyTo})
	}

	var buf bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	body := strings.ReplaceAll(params.BodyText, "\r\n", "\n")
	if _, err := qp.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n"))); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Client) send(ctx context.Context, rcpt string, message []byte) error {
	addr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: c.config.Host}
	if c.config.TLSMode == "tls" {
		tlsConn := tls.Client(conn, tlsConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if c.config.TLSMode == "starttls" {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	return c.performSMTPTransaction(client, rcpt, message)
}

func (c *Client) performSMTPTransaction(client *smtp.Client, rcpt string, message []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(c.config.Username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	to, err := mail.ParseAddress(rcpt)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if err := client.Rcpt(to.Address); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Some servers drop the connection right after DATA; the message is already queued.
	_ = client.Quit()
	return nil
}
