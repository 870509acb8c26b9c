package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "AI_INTERACTION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeInteractionCompleted = "AI_INTERACTION_COMPLETED"
	TypeInteractionFailed    = "AI_INTERACTION_FAILED"
)

// NewInteractionCompleted is emitted when an interaction reaches the
// completed state. Consumed by the notification service.
func NewInteractionCompleted(interactionId, userId uuid.UUID, kind string) Event {
	return BaseEvent{
		Type: TypeInteractionCompleted,
		Data: map[string]interface{}{
			"interaction_id": interactionId.String(),
			"user_id":        userId.String(),
			"kind":           kind,
		},
		OccurredAt: time.Now(),
	}
}

// NewInteractionFailed is emitted when an interaction reaches the failed
// state, with the terminal error description.
func NewInteractionFailed(interactionId, userId uuid.UUID, kind, errMessage string) Event {
	return BaseEvent{
		Type: TypeInteractionFailed,
		Data: map[string]interface{}{
			"interaction_id": interactionId.String(),
			"user_id":        userId.String(),
			"kind":           kind,
			"error":          errMessage,
		},
		OccurredAt: time.Now(),
	}
}
