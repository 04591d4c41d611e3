// Package smtp submits plain-text notification email over SMTP.
//
// It targets Gmail-style submission (smtp.gmail.com:587 with STARTTLS and an app
// password) but works with any server that accepts PLAIN auth:
//
//	client, err := smtp.New(smtp.Config{
//		Host:     "smtp.gmail.com",
//		Port:     587,
//		TLSMode:  "starttls",
//		Username: creds.SenderUser,
//		Password: creds.SenderPass,
//	})
//
// A client built without credentials is valid; each SendEmail then returns an
// error wrapping email.ErrMissingCredential. Set RatePerMinute to stay below a
// provider's submission quota; the limiter wait is bounded by the send context.
package smtp
