package smtp

import "time"

// Config holds SMTP submission settings.
// Username and Password may be empty at construction time: the client is still
// built, and every send fails with email.ErrMissingCredential until a restart
// with credentials.
type Config struct {
	Host          string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port          int           `env:"SMTP_PORT" envDefault:"587"`
	Username      string        `env:"SMTP_USERNAME"`
	Password      string        `env:"SMTP_PASSWORD"`
	TLSMode       string        `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls, tls, or plain
	SenderEmail   string        `env:"SENDER_EMAIL"`                        // header From when a message has none; defaults to Username
	ReplyTo       string        `env:"REPLY_TO_EMAIL"`
	Timeout       time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
	RatePerMinute int           `env:"SMTP_RATE_PER_MINUTE" envDefault:"0"` // 0 disables limiting
}
