package core

// DecisionResult is the outcome of a Decide function.
//
// Construct it only with the factory methods IdempotentDecision, SuccessDecision and RefusalDecision.
type DecisionResult struct {
	Outcome string      // "idempotent", "success" or "refused"
	Event   DomainEvent // nil for idempotent decisions
	Code    int         // engine outcome code
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	refusedOutcome    = "refused"
)

// IdempotentDecision means nothing changes and nothing is appended.
func IdempotentDecision(code int) DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome, Code: code}
}

// SuccessDecision carries the event to append for an accepted request.
func SuccessDecision(event DomainEvent, code int) DecisionResult {
	return DecisionResult{Outcome: successOutcome, Event: event, Code: code}
}

// RefusalDecision carries the error event to append for a refused request.
func RefusalDecision(event DomainEvent, code int) DecisionResult {
	return DecisionResult{Outcome: refusedOutcome, Event: event, Code: code}
}

// HasEventToAppend returns true if there is an event to append to the journal.
func (r DecisionResult) HasEventToAppend() bool {
	return r.Outcome != idempotentOutcome
}

// IsSuccess returns false only for refusals; idempotent decisions succeed.
func (r DecisionResult) IsSuccess() bool {
	return r.Outcome != refusedOutcome
}

func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}
