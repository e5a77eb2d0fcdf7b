package circulation

// CheckEligibility tells whether the member class may borrow another copy.
//
// Business Rules:
//
//	GIVEN: A snapshot, the Policy and a MemberClassID
//	ERROR: LoanLimitExceededCode(memberClass) if ActiveLoans >= LoanLimit (checked first)
//	ERROR: FineCeilingExceededCode(memberClass) if OutstandingFines > FineCeiling
//	THEN: Success with CodeSuccess otherwise
//	The state is passed through unchanged either way.
func CheckEligibility(state LibraryState, policy Policy, memberClass MemberClassID) ActionResult {
	if state.ActiveLoans(memberClass) >= policy.LoanLimit(memberClass) {
		return Failed(state, LoanLimitExceededCode(memberClass))
	}

	if state.OutstandingFines(memberClass) > policy.FineCeiling(memberClass) {
		return Failed(state, FineCeilingExceededCode(memberClass))
	}

	return Succeeded(state)
}

// AddLoan opens one loan for the member class. The loan limit is not checked here,
// CheckEligibility already did that.
func AddLoan(state LibraryState, memberClass MemberClassID) LibraryState {
	return state.withActiveLoans(memberClass, state.ActiveLoans(memberClass)+1)
}

// CloseLoan closes one loan of the member class. Closing on zero open loans is a no-op.
func CloseLoan(state LibraryState, memberClass MemberClassID) LibraryState {
	loans := state.ActiveLoans(memberClass)
	if loans <= 0 {
		return state
	}

	return state.withActiveLoans(memberClass, loans-1)
}

// AddFine adds amount to the outstanding fines of the member class. There is no upper bound.
// A non-positive amount is a no-op.
func AddFine(state LibraryState, memberClass MemberClassID, amount MinorUnits) LibraryState {
	if amount <= 0 {
		return state
	}

	return state.withOutstandingFines(memberClass, state.OutstandingFines(memberClass)+amount)
}

// Pay reduces the outstanding fines of the member class by payment, floored at 0.
// Overpayment is absorbed; it is neither refunded nor kept as credit.
// A non-positive payment, or a payment without outstanding fines, is a no-op.
func Pay(state LibraryState, memberClass MemberClassID, payment MinorUnits) LibraryState {
	fines := state.OutstandingFines(memberClass)
	if payment <= 0 || fines <= 0 {
		return state
	}

	if payment >= fines {
		return state.withOutstandingFines(memberClass, 0)
	}

	return state.withOutstandingFines(memberClass, fines-payment)
}
