package payfine

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

// Decide records a payment that changes the balance.
//
// Business Rules:
//
//	GIVEN: a member class and an amount
//	WHEN: PayFine command is received
//	THEN: FinePaid event is generated; overpayment floors the balance at 0
//	IDEMPOTENCY: a non-positive amount or a class without fines generates no event (no-op)
func Decide(history core.DomainEvents, command Command, policy circulation.Policy) core.DecisionResult {
	if command.Amount <= 0 {
		return core.IdempotentDecision(circulation.CodeSuccess)
	}

	state := core.ProjectLibraryState(policy, history)

	if state.OutstandingFines(command.MemberClass) == 0 {
		return core.IdempotentDecision(circulation.CodeSuccess)
	}

	event := core.BuildFinePaid(command.MemberClass, command.Amount, state.Day(), command.OccurredAt)

	return core.SuccessDecision(event, circulation.CodeSuccess)
}
