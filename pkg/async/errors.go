package async

import "errors"

// ErrPanic wraps a value recovered from a panicking callback.
var ErrPanic = errors.New("async: callback panicked")
