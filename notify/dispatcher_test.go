package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/changenotify/core/email"
	"github.com/dmitrymomot/changenotify/core/logger"
	"github.com/dmitrymomot/changenotify/notify"
)

func twoMessages() []notify.Message {
	return []notify.Message{
		{Role: notify.RoleInternalNew, From: "B <f@example.com>", To: "admin@example.com", Subject: "s1", Body: "b1"},
		{Role: notify.RoleClientConfirmation, From: "B <f@example.com>", To: "client@example.com", Subject: "s2", Body: "b2"},
	}
}

func TestDispatcher_AllSent(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	notify.NewDispatcher(sender, nil).Dispatch(context.Background(), twoMessages())

	assert.Equal(t, []string{"admin@example.com", "client@example.com"}, sender.recipients())

	p, ok := sender.byRecipient("client@example.com")
	assert.True(t, ok)
	assert.Equal(t, "s2", p.Subject)
	assert.Equal(t, "b2", p.BodyText)
	assert.Equal(t, string(notify.RoleClientConfirmation), p.Tag)
}

func TestDispatcher_FailureIsContained(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat("json"))

	sender := &recordingSender{fail: func(p email.SendEmailParams) error {
		if p.SendTo == "admin@example.com" {
			return errors.Join(email.ErrFailedToSendEmail, errors.New("connection refused"))
		}
		return nil
	}}

	assert.NotPanics(t, func() {
		notify.NewDispatcher(sender, log).Dispatch(context.Background(), twoMessages())
	})

	// the second send is attempted even though the first failed
	assert.Equal(t, []string{"admin@example.com", "client@example.com"}, sender.recipients())

	out := buf.String()
	assert.Contains(t, out, "notification send failed")
	assert.Contains(t, out, "admin@example.com")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "notification sent")
}

func TestDispatcher_PanicIsContained(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{fail: func(p email.SendEmailParams) error {
		if p.SendTo == "admin@example.com" {
			panic("transport exploded")
		}
		return nil
	}}

	assert.NotPanics(t, func() {
		notify.NewDispatcher(sender, nil).Dispatch(context.Background(), twoMessages())
	})
	assert.Len(t, sender.recipients(), 2)
}

func TestDispatcher_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var seen []error
	sender := email.SenderFunc(func(ctx context.Context, _ email.SendEmailParams) error {
		seen = append(seen, ctx.Err())
		return nil
	})

	notify.NewDispatcher(sender, nil).Dispatch(ctx, twoMessages()[:1])
	assert.Equal(t, []error{nil}, seen)
}

func TestDispatcher_Empty(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	notify.NewDispatcher(sender, nil).Dispatch(context.Background(), nil)
	assert.Empty(t, sender.recipients())
}
