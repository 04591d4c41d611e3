package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/changenotify/core/email"
	"github.com/dmitrymomot/changenotify/core/logger"
	"github.com/dmitrymomot/changenotify/pkg/async"
)

// Dispatcher submits rendered messages. Each send is attempted exactly once in
// its own fault boundary, and nothing escapes Dispatch: the change feed would
// redeliver on failure, and a duplicate client email is worse than a missed one.
type Dispatcher struct {
	sender email.EmailSender
	logger *slog.Logger
}

// NewDispatcher wraps sender. A nil logger discards output.
func NewDispatcher(sender email.EmailSender, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher{sender: sender, logger: log}
}

// Dispatch sends all messages concurrently and waits for every attempt.
// Failures and panics are logged with recipient, role and cause, then dropped.
// Cancelling ctx does not abort sends already started; the transport bounds
// each send with its own timeout.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs []Message) {
	if len(msgs) == 0 {
		return
	}

	start := time.Now()
	sendCtx := context.WithoutCancel(ctx)
	errs := async.Settle(sendCtx, msgs, func(ctx context.Context, m Message) error {
		return d.sender.SendEmail(ctx, email.SendEmailParams{
			From:     m.From,
			SendTo:   m.To,
			Subject:  m.Subject,
			BodyText: m.Body,
			Tag:      string(m.Role),
		})
	})

	failed := 0
	for i, err := range errs {
		m := msgs[i]
		if err != nil {
			failed++
			d.logger.ErrorContext(ctx, "notification send failed",
				logger.Recipient(m.To),
				logger.Role(string(m.Role)),
				logger.Error(err))
			continue
		}
		d.logger.InfoContext(ctx, "notification sent",
			logger.Recipient(m.To),
			logger.Role(string(m.Role)))
	}

	d.logger.DebugContext(ctx, "dispatch finished",
		logger.Count("messages", len(msgs)),
		logger.Count("failed", failed),
		logger.Elapsed(start))
}
