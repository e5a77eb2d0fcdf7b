package advanceday

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

// Decide generates a DayAdvanced event for the day after the projected one.
func Decide(history core.DomainEvents, command Command, policy circulation.Policy) core.DecisionResult {
	next := circulation.AdvanceDay(core.ProjectLibraryState(policy, history))

	return core.SuccessDecision(core.BuildDayAdvanced(next.Day(), command.OccurredAt), circulation.CodeSuccess)
}
