package postmark

// Config holds Postmark credentials. The account token is optional: sending
// transactional mail only needs the server token.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"SENDER_EMAIL"`
	ReplyTo      string `env:"REPLY_TO_EMAIL"`
	BaseURL      string `env:"POSTMARK_BASE_URL"`
}
