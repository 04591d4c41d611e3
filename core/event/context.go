package event

import (
	"context"
	"time"
)

type eventIDCtx struct{}
type eventNameCtx struct{}
type eventTimeCtx struct{}

// WithEventMeta attaches the event ID, name and creation time to ctx.
func WithEventMeta(ctx context.Context, evt Event) context.Context {
	ctx = context.WithValue(ctx, eventIDCtx{}, evt.ID)
	ctx = context.WithValue(ctx, eventNameCtx{}, evt.Name)
	return context.WithValue(ctx, eventTimeCtx{}, evt.CreatedAt)
}

// EventID extracts the event ID from the context.
// Returns empty string if not present.
func EventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDCtx{}).(string)
	return id
}

// EventName extracts the event name from the context.
func EventName(ctx context.Context) string {
	name, _ := ctx.Value(eventNameCtx{}).(string)
	return name
}

// EventTime extracts the event creation time from the context.
func EventTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(eventTimeCtx{}).(time.Time)
	return t
}
