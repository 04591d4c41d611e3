package event

import "errors"

var (
	ErrNoHandlers              = errors.New("no handlers registered for event")
	ErrProcessorAlreadyStarted = errors.New("processor already started")
	ErrProcessorNotStarted     = errors.New("processor not started")
	ErrEventSourceNil          = errors.New("event source is nil")
	ErrTransportClosed         = errors.New("event transport is closed")
	ErrUnexpectedPayload       = errors.New("unexpected payload type")
	ErrHealthcheckFailed       = errors.New("event processor healthcheck failed")
)
