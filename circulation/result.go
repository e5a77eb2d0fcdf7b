package circulation

// ActionResult pairs the snapshot produced by an action with its outcome.
//
// IMPORTANT: ActionResult should only be constructed using the provided factory methods:
// Succeeded(state), SucceededWithCode(state, code), or Failed(state, code).
// The caller becomes the owner of State and threads it into the next action.
type ActionResult struct {
	State   LibraryState
	Success bool
	Code    int
}

// Succeeded creates an ActionResult for a successful action with CodeSuccess.
func Succeeded(state LibraryState) ActionResult {
	return SucceededWithCode(state, CodeSuccess)
}

// SucceededWithCode creates an ActionResult for a successful action carrying an informational code.
func SucceededWithCode(state LibraryState, code int) ActionResult {
	return ActionResult{
		State:   state,
		Success: true,
		Code:    code,
	}
}

// Failed creates an ActionResult for a refused action; state is passed through unchanged.
func Failed(state LibraryState, code int) ActionResult {
	return ActionResult{
		State:   state,
		Success: false,
		Code:    code,
	}
}

// Outcome classifies the result by its success flag and code.
func (r ActionResult) Outcome() OutcomeKind {
	return ClassifyOutcome(r.Success, r.Code)
}
