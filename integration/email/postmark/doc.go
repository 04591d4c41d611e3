// Package postmark implements email.EmailSender on top of Postmark's
// transactional API (github.com/mrz1836/postmark).
//
//	sender, err := postmark.New(postmark.Config{
//		ServerToken: os.Getenv("POSTMARK_SERVER_TOKEN"),
//		SenderEmail: "no-reply@rolling-translations.com",
//	})
//
// API-level rejections (non-zero ErrorCode) and transport errors are both
// joined with email.ErrFailedToSendEmail.
package postmark
