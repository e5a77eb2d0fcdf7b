package core

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ProjectLibraryState folds events onto circulation.Seed(policy), or onto base if given, using the
// engine's own transitions, so a projection always equals threading the engine directly.
//
// Error events change nothing. A projection over a filtered history is exact for the titles and
// member classes the filter selected.
func ProjectLibraryState(
	policy circulation.Policy,
	history DomainEvents,
	base ...circulation.LibraryState,
) circulation.LibraryState {

	state := circulation.Seed(policy)
	if len(base) > 0 {
		state = base[0]
	}

	for _, event := range history {
		switch e := event.(type) {
		case CopyCheckedOut:
			state = circulation.TakeCopy(state, e.Title)
			state = circulation.AddLoan(state, e.MemberClass)

		case CopyReturned:
			state = circulation.Return(state, policy, e.MemberClass, e.Title, e.LateDays).State

		case FinePaid:
			state = circulation.Pay(state, e.MemberClass, e.Amount)

		case DayAdvanced:
			state = circulation.AdvanceDay(state)
		}
	}

	return state
}
