package circulation

// Checkout lends one copy of the title to the member class.
//
// Business Rules:
//
//	GIVEN: A snapshot, the Policy, a MemberClassID and a TitleID
//	WHEN: the member class is eligible (see CheckEligibility)
//	AND: the title is available (see CheckAvailability)
//	THEN: one copy leaves the shelf, one loan is opened, Success with CodeSuccess
//	ERROR: the first failing check is returned verbatim, nothing else happens
//
// Eligibility is checked before availability, so an ineligible member facing an empty shelf
// always gets the eligibility code.
func Checkout(state LibraryState, policy Policy, memberClass MemberClassID, title TitleID) ActionResult {
	eligibility := CheckEligibility(state, policy, memberClass)
	if !eligibility.Success {
		return eligibility
	}

	availability := CheckAvailability(eligibility.State, title)
	if !availability.Success {
		return availability
	}

	next := TakeCopy(availability.State, title)
	next = AddLoan(next, memberClass)

	return Succeeded(next)
}

// Return takes a copy of the title back from the member class.
//
// Business Rules:
//
//	GIVEN: A snapshot, the Policy, a MemberClassID, a TitleID and the number of late days
//	THEN: the copy is back on the shelf and one loan of the member class is closed
//	AND: if lateDays > 0, a fine of LateFee(policy, lateDays) is added
//	THEN: Success with ReturnCompletedCode(lateDays)
//
// Return never fails, even if the member class had no matching loan: closing a loan on zero
// open loans is a no-op.
func Return(state LibraryState, policy Policy, memberClass MemberClassID, title TitleID, lateDays int) ActionResult {
	next := PutCopy(state, title)
	next = CloseLoan(next, memberClass)

	if lateDays > 0 {
		next = AddFine(next, memberClass, LateFee(policy, lateDays))
	}

	return SucceededWithCode(next, ReturnCompletedCode(lateDays))
}

// LateFee is the flat per-day penalty for a return that is lateDays late.
func LateFee(policy Policy, lateDays int) MinorUnits {
	if lateDays <= 0 {
		return 0
	}

	return lateDays * policy.LateFeePerDay
}
