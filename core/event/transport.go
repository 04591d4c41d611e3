package event

import (
	"context"
	"sync"
)

// ChannelTransport is a buffered in-process wire between a Publisher and a
// Processor.
type ChannelTransport struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

// NewChannelTransport creates a transport with the given buffer size.
func NewChannelTransport(bufferSize int) *ChannelTransport {
	if bufferSize < 1 {
		panic("event: bufferSize must be at least 1")
	}
	return &ChannelTransport{ch: make(chan Event, bufferSize)}
}

// Dispatch enqueues evt. It blocks while the buffer is full so producers get
// backpressure, and gives up when ctx is done.
func (t *ChannelTransport) Dispatch(ctx context.Context, evt Event) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return ErrTransportClosed
	}

	select {
	case t.ch <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events returns the channel the Processor consumes.
func (t *ChannelTransport) Events() <-chan Event {
	return t.ch
}

// Close closes the channel. Idempotent.
func (t *ChannelTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		t.closed = true
		close(t.ch)
	}
	return nil
}
