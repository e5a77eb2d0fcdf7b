package core

import (
	"time"
)

const DayAdvancedEventType = "DayAdvanced"

// DayAdvanced records the start of a new day; Day is the new current day.
type DayAdvanced struct {
	Day        Day
	OccurredAt OccurredAt
}

func BuildDayAdvanced(day Day, occurredAt time.Time) DayAdvanced {
	return DayAdvanced{
		Day:        day,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e DayAdvanced) EventType() string {
	return DayAdvancedEventType
}

func (e DayAdvanced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e DayAdvanced) IsErrorEvent() bool {
	return false
}
