package circulation

// Seed produces the initial snapshot: the policy's start day, every configured title with its
// starting copies, and every configured member class with neither loans nor fines.
func Seed(policy Policy) LibraryState {
	copies := make(map[TitleID]int, len(policy.Titles))
	for _, title := range policy.Titles {
		copies[title.ID] = title.StartingCopies
	}

	loans := make(map[MemberClassID]int, len(policy.MemberClasses))
	fines := make(map[MemberClassID]MinorUnits, len(policy.MemberClasses))
	for _, memberClass := range policy.MemberClasses {
		loans[memberClass.ID] = 0
		fines[memberClass.ID] = 0
	}

	return BuildLibraryState(policy.StartDay, copies, loans, fines)
}

// AdvanceDay returns a snapshot identical to state except that the day is incremented by 1.
func AdvanceDay(state LibraryState) LibraryState {
	return state.withDay(state.day + 1)
}

// CheckAvailability tells whether the title has at least one copy on the shelf.
//
// Business Rules:
//
//	GIVEN: A snapshot and a TitleID
//	THEN: Success with CodeSuccess if AvailableCopies(title) > 0
//	ERROR: TitleUnavailableCode(title) otherwise
//	The state is passed through unchanged either way.
func CheckAvailability(state LibraryState, title TitleID) ActionResult {
	if state.AvailableCopies(title) > 0 {
		return Succeeded(state)
	}

	return Failed(state, TitleUnavailableCode(title))
}

// TakeCopy removes one copy of the title from the shelf.
//
// Callers must check availability first. Taking from an empty shelf returns the state
// unchanged, so the count can never become negative.
func TakeCopy(state LibraryState, title TitleID) LibraryState {
	copies := state.AvailableCopies(title)
	if copies <= 0 {
		return state
	}

	return state.withAvailableCopies(title, copies-1)
}

// PutCopy puts one copy of the title back on the shelf. There is no capacity limit.
func PutCopy(state LibraryState, title TitleID) LibraryState {
	return state.withAvailableCopies(title, state.AvailableCopies(title)+1)
}
