package advanceday

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

const (
	commandType = "AdvanceDay"
)

type Command struct {
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(occurredAt time.Time) Command {
	return Command{
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
