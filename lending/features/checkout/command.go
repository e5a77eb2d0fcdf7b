package checkout

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

const (
	commandType = "Checkout"
)

// Command is the request of a member class to borrow one copy of a title.
type Command struct {
	MemberClass core.MemberClassID
	Title       core.TitleID
	OccurredAt  core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(memberClass core.MemberClassID, title core.TitleID, occurredAt time.Time) Command {
	return Command{
		MemberClass: memberClass,
		Title:       title,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
