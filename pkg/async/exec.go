package async

import (
	"context"
	"fmt"
)

// ExecFuture is the pending result of a function that only returns an error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns and reports its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// IsComplete reports whether the function has returned, without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn(ctx, param) in its own goroutine. A panic inside fn is
// recovered and surfaced as an error wrapping ErrPanic, so a faulty callback
// never takes the process down.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		// Early exit when the context is already cancelled.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// Settle runs fn for every item concurrently and waits for all of them.
// The returned slice holds one error (or nil) per item, in input order. One
// failing or panicking item never stops the others from running.
func Settle[T any](ctx context.Context, items []T, fn func(context.Context, T) error) []error {
	futures := make([]*ExecFuture, len(items))
	for i, item := range items {
		futures[i] = Exec(ctx, item, fn)
	}

	errs := make([]error, len(items))
	for i, f := range futures {
		errs[i] = f.Await()
	}

	return errs
}
