package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts StorableEvents to DomainEvents, keeping their order.
func DomainEventsFrom(storableEvents journal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.CopyCheckedOutEventType:
		return unmarshalPayload[core.CopyCheckedOut](storableEvent.PayloadJSON)

	case core.CheckoutRefusedEventType:
		return unmarshalPayload[core.CheckoutRefused](storableEvent.PayloadJSON)

	case core.CopyReturnedEventType:
		return unmarshalPayload[core.CopyReturned](storableEvent.PayloadJSON)

	case core.FinePaidEventType:
		return unmarshalPayload[core.FinePaid](storableEvent.PayloadJSON)

	case core.DayAdvancedEventType:
		return unmarshalPayload[core.DayAdvanced](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
