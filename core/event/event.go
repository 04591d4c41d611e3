package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is an in-process envelope around a typed payload.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // derived from the payload type, e.g. "ChangeEvent"
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent wraps payload with a fresh UUID and timestamp. The name is derived
// from the payload type.
func NewEvent(payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Name:      getEventName(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}
