package returncopy

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

// Decide accepts every return.
//
// Business Rules:
//
//	GIVEN: a member class, a title and the number of late days
//	WHEN: ReturnCopy command is received
//	THEN: CopyReturned event is generated with the late fee, code 1000+lateDays
//	Returns without a matching loan are accepted too; closing a loan never goes below zero.
func Decide(history core.DomainEvents, command Command, policy circulation.Policy) core.DecisionResult {
	state := core.ProjectLibraryState(policy, history)
	result := circulation.Return(state, policy, command.MemberClass, command.Title, command.LateDays)

	event := core.BuildCopyReturned(
		command.MemberClass,
		command.Title,
		state.Day(),
		command.LateDays,
		circulation.LateFee(policy, command.LateDays),
		command.OccurredAt,
	)

	return core.SuccessDecision(event, result.Code)
}
