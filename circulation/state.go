package circulation

import (
	"maps"
	"slices"
)

// LibraryState is an immutable snapshot of the whole library at one instant.
//
// Its fields are unexported on purpose: the only way to get a different snapshot is through the
// operations of this package, which always return a fresh value and leave the input untouched.
// The zero value is a valid, empty library on day 0.
type LibraryState struct {
	day              Day
	availableCopies  map[TitleID]int
	activeLoans      map[MemberClassID]int
	outstandingFines map[MemberClassID]MinorUnits
}

// BuildLibraryState is a factory method for LibraryState.
//
// It copies the given maps, so later changes to them by the caller do not leak into the snapshot.
// Negative counts are stored as 0 because no transition can ever produce them.
func BuildLibraryState(
	day Day,
	availableCopies map[TitleID]int,
	activeLoans map[MemberClassID]int,
	outstandingFines map[MemberClassID]MinorUnits,
) LibraryState {

	return LibraryState{
		day:              max(day, 0),
		availableCopies:  copyNonNegative(availableCopies),
		activeLoans:      copyNonNegative(activeLoans),
		outstandingFines: copyNonNegative(outstandingFines),
	}
}

// Day returns the current day.
func (s LibraryState) Day() Day {
	return s.day
}

// AvailableCopies returns the number of copies of the title currently on the shelf.
// Titles unknown to the snapshot have 0 copies.
func (s LibraryState) AvailableCopies(title TitleID) int {
	return s.availableCopies[title]
}

// ActiveLoans returns the number of open loans of the member class.
func (s LibraryState) ActiveLoans(memberClass MemberClassID) int {
	return s.activeLoans[memberClass]
}

// OutstandingFines returns the unpaid fines of the member class.
func (s LibraryState) OutstandingFines(memberClass MemberClassID) MinorUnits {
	return s.outstandingFines[memberClass]
}

// Titles returns the ids of all titles tracked by the snapshot in ascending order.
func (s LibraryState) Titles() []TitleID {
	return slices.Sorted(maps.Keys(s.availableCopies))
}

// MemberClasses returns the ids of all member classes tracked by the snapshot in ascending order.
// A class is tracked once it has a loan or a fine entry, even if both are 0.
func (s LibraryState) MemberClasses() []MemberClassID {
	ids := slices.Collect(maps.Keys(s.activeLoans))
	for memberClass := range s.outstandingFines {
		if _, ok := s.activeLoans[memberClass]; !ok {
			ids = append(ids, memberClass)
		}
	}

	slices.Sort(ids)

	return ids
}

// CopiesByTitle returns a copy of the availability mapping.
func (s LibraryState) CopiesByTitle() map[TitleID]int {
	return maps.Clone(nonNil(s.availableCopies))
}

// LoansByMemberClass returns a copy of the active loans mapping.
func (s LibraryState) LoansByMemberClass() map[MemberClassID]int {
	return maps.Clone(nonNil(s.activeLoans))
}

// FinesByMemberClass returns a copy of the outstanding fines mapping.
func (s LibraryState) FinesByMemberClass() map[MemberClassID]MinorUnits {
	return maps.Clone(nonNil(s.outstandingFines))
}

// Equal reports whether both snapshots describe the same library state.
func (s LibraryState) Equal(other LibraryState) bool {
	return s.day == other.day &&
		maps.Equal(nonNil(s.availableCopies), nonNil(other.availableCopies)) &&
		maps.Equal(nonNil(s.activeLoans), nonNil(other.activeLoans)) &&
		maps.Equal(nonNil(s.outstandingFines), nonNil(other.outstandingFines))
}

/***** derivation *****/

func (s LibraryState) withDay(day Day) LibraryState {
	next := s.clone()
	next.day = day

	return next
}

func (s LibraryState) withAvailableCopies(title TitleID, copies int) LibraryState {
	next := s.clone()
	next.availableCopies[title] = copies

	return next
}

func (s LibraryState) withActiveLoans(memberClass MemberClassID, loans int) LibraryState {
	next := s.clone()
	next.activeLoans[memberClass] = loans

	return next
}

func (s LibraryState) withOutstandingFines(memberClass MemberClassID, fines MinorUnits) LibraryState {
	next := s.clone()
	next.outstandingFines[memberClass] = fines

	return next
}

func (s LibraryState) clone() LibraryState {
	return LibraryState{
		day:              s.day,
		availableCopies:  maps.Clone(nonNil(s.availableCopies)),
		activeLoans:      maps.Clone(nonNil(s.activeLoans)),
		outstandingFines: maps.Clone(nonNil(s.outstandingFines)),
	}
}

func copyNonNegative(in map[int]int) map[int]int {
	out := make(map[int]int, len(in))
	for k, v := range in {
		out[k] = max(v, 0)
	}

	return out
}

// nonNil makes sure maps.Clone never hands out a nil map, so derived snapshots stay writable.
func nonNil(m map[int]int) map[int]int {
	if m == nil {
		return map[int]int{}
	}

	return m
}
