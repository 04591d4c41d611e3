// Package email defines the mail-submission contract used by the notifier and a
// development sender that writes messages to disk.
//
// Transports live under integration/email (smtp, postmark). Every transport
// implements EmailSender:
//
//	type EmailSender interface {
//		SendEmail(ctx context.Context, params SendEmailParams) error
//	}
//
// Errors are wrapped around the package sentinels, so callers can branch with
// errors.Is:
//
//	switch {
//	case errors.Is(err, email.ErrInvalidParams):
//	case errors.Is(err, email.ErrMissingCredential):
//	case errors.Is(err, email.ErrFailedToSendEmail):
//	}
//
// For local work, NewDevSender("./dev_emails") stores each message as
// <timestamp>_<tag>.txt with a .json metadata sidecar.
package email
