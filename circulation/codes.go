package circulation

// Outcome code bases. A code is the base plus the id of the title or member class involved,
// or plus the number of late days for returns.
const (
	CodeSuccess = 0

	titleUnavailableBase    = 200
	loanLimitExceededBase   = 300
	fineCeilingExceededBase = 400
	returnCompletedBase     = 1000
)

// TitleUnavailableCode is the failure code for a title without a copy on the shelf.
func TitleUnavailableCode(title TitleID) int {
	return titleUnavailableBase + title
}

// LoanLimitExceededCode is the failure code for a member class at or above its loan limit.
func LoanLimitExceededCode(memberClass MemberClassID) int {
	return loanLimitExceededBase + memberClass
}

// FineCeilingExceededCode is the failure code for a member class above its fine ceiling.
func FineCeilingExceededCode(memberClass MemberClassID) int {
	return fineCeilingExceededBase + memberClass
}

// ReturnCompletedCode is the code of a completed return; it encodes the lateness.
func ReturnCompletedCode(lateDays int) int {
	return returnCompletedBase + lateDays
}

// OutcomeKind names the range an outcome code falls into.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota
	OutcomeSuccess
	OutcomeTitleUnavailable
	OutcomeLoanLimitExceeded
	OutcomeFineCeilingExceeded
	OutcomeReturnCompleted
)

// ClassifyCode maps an outcome code to its kind by range alone.
//
// Ids below 100 are assumed, so each failure range spans [base, base+100).
// Return codes start at 1000 and are open-ended; a return with negative late days falls below
// that range, so use ClassifyOutcome when the success flag is known.
func ClassifyCode(code int) OutcomeKind {
	switch {
	case code == CodeSuccess:
		return OutcomeSuccess
	case code >= titleUnavailableBase && code < loanLimitExceededBase:
		return OutcomeTitleUnavailable
	case code >= loanLimitExceededBase && code < fineCeilingExceededBase:
		return OutcomeLoanLimitExceeded
	case code >= fineCeilingExceededBase && code < fineCeilingExceededBase+100:
		return OutcomeFineCeilingExceeded
	case code >= returnCompletedBase:
		return OutcomeReturnCompleted
	default:
		return OutcomeUnknown
	}
}

// ClassifyOutcome maps a result to its kind. Only returns succeed with a code other than
// CodeSuccess, and only the failure ranges are valid for refusals.
func ClassifyOutcome(success bool, code int) OutcomeKind {
	switch {
	case success && code == CodeSuccess:
		return OutcomeSuccess
	case success:
		return OutcomeReturnCompleted
	}

	if kind := ClassifyCode(code); kind.IsFailure() {
		return kind
	}

	return OutcomeUnknown
}

// String returns a stable snake_case name, suitable for log attributes and metric labels.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeTitleUnavailable:
		return "title_unavailable"
	case OutcomeLoanLimitExceeded:
		return "loan_limit_exceeded"
	case OutcomeFineCeilingExceeded:
		return "fine_ceiling_exceeded"
	case OutcomeReturnCompleted:
		return "return_completed"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the kind stands for a refused action.
func (k OutcomeKind) IsFailure() bool {
	switch k {
	case OutcomeTitleUnavailable, OutcomeLoanLimitExceeded, OutcomeFineCeilingExceeded:
		return true
	default:
		return false
	}
}
