package event

import "context"

// PublisherTransport delivers events to a processor.
type PublisherTransport interface {
	Dispatch(ctx context.Context, evt Event) error
}

// Publisher wraps payloads into events and hands them to a transport.
type Publisher struct {
	transport PublisherTransport
}

// NewPublisher creates a publisher over transport.
func NewPublisher(transport PublisherTransport) *Publisher {
	return &Publisher{transport: transport}
}

// Publish wraps payload with NewEvent and dispatches it. Returns the event ID.
func (p *Publisher) Publish(ctx context.Context, payload any) (string, error) {
	evt := NewEvent(payload)
	if err := p.transport.Dispatch(ctx, evt); err != nil {
		return "", err
	}
	return evt.ID, nil
}
