package returncopy

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

const (
	commandType = "ReturnCopy"
)

// Command returns one copy of Title borrowed by MemberClass, LateDays after it was due.
type Command struct {
	MemberClass core.MemberClassID
	Title       core.TitleID
	LateDays    int
	OccurredAt  core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(memberClass core.MemberClassID, title core.TitleID, lateDays int, occurredAt time.Time) Command {
	return Command{
		MemberClass: memberClass,
		Title:       title,
		LateDays:    lateDays,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
