package core

import (
	"time"
)

const FinePaidEventType = "FinePaid"

// FinePaid records a payment as offered; the projection floors the balance at 0.
type FinePaid struct {
	MemberClass MemberClassID
	Amount      MinorUnits
	Day         Day
	OccurredAt  OccurredAt
}

func BuildFinePaid(memberClass MemberClassID, amount MinorUnits, day Day, occurredAt time.Time) FinePaid {
	return FinePaid{
		MemberClass: memberClass,
		Amount:      amount,
		Day:         day,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e FinePaid) EventType() string {
	return FinePaidEventType
}

func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e FinePaid) IsErrorEvent() bool {
	return false
}
