package core

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Alias types instead of value objects, shared with the engine.

type TitleID = circulation.TitleID
type MemberClassID = circulation.MemberClassID
type MinorUnits = circulation.MinorUnits
type Day = circulation.Day
type OccurredAt = time.Time

// ToOccurredAt normalizes timestamps so they survive a JSON round trip unchanged.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
