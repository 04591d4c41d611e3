package accounts

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
	ErrAccountNotFound = errors.New("account not found")
	ErrMalformedTokens = errors.New("malformed admin token list")
)
