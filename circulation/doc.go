// Package circulation implements library circulation as a pure, immutable state-transition engine.
//
// A LibraryState is a snapshot of the whole system: the current day, the copies of each title
// that sit on the shelf, and per member class the number of open loans and the outstanding fines.
// Every action takes a snapshot and returns a new one, usually paired with an outcome in an
// ActionResult. Nothing is ever mutated in place, so a caller may keep old snapshots around
// and compare them with new ones.
//
// The engine is split along three components:
//   - Catalog: Seed, AdvanceDay, CheckAvailability, TakeCopy, PutCopy
//   - Members: CheckEligibility, AddLoan, CloseLoan, AddFine, Pay
//   - Circulation: Checkout and Return, composed from the two components above
//
// Rules that a library may want to tune (starting copies, loan limits, fine ceilings, the
// late fee) live in a Policy value that is passed to the operations needing it.
//
// Failures are never errors. A refused checkout is an ActionResult with Success == false and a
// Code telling why:
//
//	0          success
//	200 + t    title t has no copy on the shelf
//	300 + m    member class m reached its loan limit
//	400 + m    member class m is above its fine ceiling
//	1000 + d   return completed, d days late
//
// Typical usage:
//
//	policy := circulation.DefaultPolicy()
//	state := circulation.Seed(policy)
//
//	result := circulation.Checkout(state, policy, 1, 1)
//	if !result.Success {
//		// report result.Code
//	}
//	state = result.State
package circulation
