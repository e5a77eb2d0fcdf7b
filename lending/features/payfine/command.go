package payfine

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

const (
	commandType = "PayFine"
)

// Command pays Amount towards the outstanding fines of MemberClass.
type Command struct {
	MemberClass core.MemberClassID
	Amount      core.MinorUnits
	OccurredAt  core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(memberClass core.MemberClassID, amount core.MinorUnits, occurredAt time.Time) Command {
	return Command{
		MemberClass: memberClass,
		Amount:      amount,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
