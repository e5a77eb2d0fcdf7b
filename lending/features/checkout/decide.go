package checkout

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

const (
	failureReasonTitleUnavailable    = "no copy of the title is available"
	failureReasonLoanLimitExceeded   = "member class has reached its loan limit"
	failureReasonFineCeilingExceeded = "member class has fines above the ceiling"
	failureReasonUnknown             = "checkout was refused"
)

// Decide runs the checkout on the state projected from history.
//
// Business Rules:
//
//	GIVEN: a member class and a title
//	WHEN: Checkout command is received
//	THEN: CopyCheckedOut event is generated, code 0
//	ERROR: code 300+class if the class holds as many loans as its limit allows
//	ERROR: code 400+class if the class owes more than its fine ceiling
//	ERROR: code 200+title if no copy is on the shelf
//	Refusals generate a CheckoutRefused event carrying the code.
func Decide(history core.DomainEvents, command Command, policy circulation.Policy) core.DecisionResult {
	state := core.ProjectLibraryState(policy, history)
	result := circulation.Checkout(state, policy, command.MemberClass, command.Title)

	if !result.Success {
		event := core.BuildCheckoutRefused(
			command.MemberClass,
			command.Title,
			state.Day(),
			result.Code,
			failureReason(result.Code),
			command.OccurredAt,
		)

		return core.RefusalDecision(event, result.Code)
	}

	event := core.BuildCopyCheckedOut(command.MemberClass, command.Title, state.Day(), command.OccurredAt)

	return core.SuccessDecision(event, result.Code)
}

func failureReason(code int) string {
	switch circulation.ClassifyCode(code) {
	case circulation.OutcomeTitleUnavailable:
		return failureReasonTitleUnavailable
	case circulation.OutcomeLoanLimitExceeded:
		return failureReasonLoanLimitExceeded
	case circulation.OutcomeFineCeilingExceeded:
		return failureReasonFineCeilingExceeded
	default:
		return failureReasonUnknown
	}
}
