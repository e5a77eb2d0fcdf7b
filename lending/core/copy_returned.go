package core

import (
	"time"
)

const CopyReturnedEventType = "CopyReturned"

// CopyReturned records a returned copy. Fine is what the return added to the member class's balance.
type CopyReturned struct {
	MemberClass MemberClassID
	Title       TitleID
	Day         Day
	LateDays    int
	Fine        MinorUnits
	OccurredAt  OccurredAt
}

func BuildCopyReturned(
	memberClass MemberClassID,
	title TitleID,
	day Day,
	lateDays int,
	fine MinorUnits,
	occurredAt time.Time,
) CopyReturned {

	return CopyReturned{
		MemberClass: memberClass,
		Title:       title,
		Day:         day,
		LateDays:    lateDays,
		Fine:        fine,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e CopyReturned) EventType() string {
	return CopyReturnedEventType
}

func (e CopyReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CopyReturned) IsErrorEvent() bool {
	return false
}
