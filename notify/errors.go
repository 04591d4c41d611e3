package notify

import "errors"

var (
	ErrUnknownRole = errors.New("unknown message role")
	ErrNoRecipient = errors.New("message has no recipient")

	ErrMalformedRecord = errors.New("malformed record")
)
