package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrSnapshotDataInvalid is returned when snapshot data cannot be turned back into a LibraryState.
var ErrSnapshotDataInvalid = errors.New("snapshot data is invalid")

// LibraryStateSnapshotData is the serialized form of a circulation.LibraryState inside a journal.Snapshot.
type LibraryStateSnapshotData struct {
	Day    circulation.Day
	Copies []TitleCount
	Loans  []MemberClassCount
	Fines  []MemberClassCount
}

type TitleCount struct {
	Title circulation.TitleID
	Count int
}

type MemberClassCount struct {
	MemberClass circulation.MemberClassID
	Count       int
}

// SnapshotDataFrom serializes the state with entries in ascending id order, so equal states give equal JSON.
func SnapshotDataFrom(state circulation.LibraryState) ([]byte, error) {
	data := LibraryStateSnapshotData{Day: state.Day()}

	for _, title := range state.Titles() {
		data.Copies = append(data.Copies, TitleCount{Title: title, Count: state.AvailableCopies(title)})
	}

	loans := state.LoansByMemberClass()
	fines := state.FinesByMemberClass()
	for _, memberClass := range state.MemberClasses() {
		if count, ok := loans[memberClass]; ok {
			data.Loans = append(data.Loans, MemberClassCount{MemberClass: memberClass, Count: count})
		}

		if amount, ok := fines[memberClass]; ok {
			data.Fines = append(data.Fines, MemberClassCount{MemberClass: memberClass, Count: amount})
		}
	}

	return jsoniter.ConfigFastest.Marshal(data)
}

// LibraryStateFromSnapshotData is the inverse of SnapshotDataFrom.
func LibraryStateFromSnapshotData(raw []byte) (circulation.LibraryState, error) {
	data := new(LibraryStateSnapshotData)

	if err := jsoniter.ConfigFastest.Unmarshal(raw, data); err != nil {
		return circulation.LibraryState{}, errors.Join(ErrSnapshotDataInvalid, err)
	}

	copies := make(map[circulation.TitleID]int, len(data.Copies))
	for _, entry := range data.Copies {
		copies[entry.Title] = entry.Count
	}

	loans := make(map[circulation.MemberClassID]int, len(data.Loans))
	for _, entry := range data.Loans {
		loans[entry.MemberClass] = entry.Count
	}

	fines := make(map[circulation.MemberClassID]circulation.MinorUnits, len(data.Fines))
	for _, entry := range data.Fines {
		fines[entry.MemberClass] = entry.Count
	}

	return circulation.BuildLibraryState(data.Day, copies, loans, fines), nil
}
