package event

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
)

// HandlerFunc is a type-safe function signature for processing events of type T.
type HandlerFunc[T any] func(context.Context, T) error

// Handler processes events of one name.
type Handler interface {
	EventName() string
	Handle(ctx context.Context, payload any) error
}

// NewHandlerFunc creates a handler whose event name is derived from T.
//
//	h := event.NewHandlerFunc(func(ctx context.Context, evt notify.ChangeEvent) error {
//		return svc.Handle(ctx, evt)
//	})
func NewHandlerFunc[T any](fn HandlerFunc[T]) Handler {
	var zero T
	return &handlerFuncWrapper[T]{name: getEventName(zero), fn: fn}
}

type handlerFuncWrapper[T any] struct {
	name string
	fn   HandlerFunc[T]
}

func (h *handlerFuncWrapper[T]) EventName() string { return h.name }

func (h *handlerFuncWrapper[T]) Handle(ctx context.Context, payload any) error {
	typed, err := unmarshalPayload[T](payload)
	if err != nil {
		return err
	}
	return h.fn(ctx, typed)
}

// getEventName returns the bare type name, unwrapping pointers.
// Both a.ChangeEvent and b.ChangeEvent map to "ChangeEvent".
func getEventName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func unmarshalPayload[T any](payload any) (T, error) {
	var zero T

	if v, ok := payload.(T); ok {
		return v, nil
	}
	if p, ok := payload.(*T); ok && p != nil {
		return *p, nil
	}
	if data, ok := payload.([]byte); ok {
		var evt T
		if err := json.Unmarshal(data, &evt); err != nil {
			return zero, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		return evt, nil
	}

	return zero, fmt.Errorf("%w: %T", ErrUnexpectedPayload, payload)
}
