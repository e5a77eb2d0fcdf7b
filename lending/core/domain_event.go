package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent is a fact that happened at the circulation desk.
type DomainEvent interface {
	EventType() string
	HasOccurredAt() time.Time
	// IsErrorEvent reports whether the event records a refused request rather than a state change.
	IsErrorEvent() bool
}
