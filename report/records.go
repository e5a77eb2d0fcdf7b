package report

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

type stateRecord struct {
	Kind      string             `json:"kind"`
	Day       int                `json:"day"`
	Available []availableEntry   `json:"available"`
	Loans     []memberClassEntry `json:"loans"`
	Fines     []memberClassEntry `json:"fines"`
}

type availableEntry struct {
	Title  string `json:"title"`
	Copies int    `json:"copies"`
}

type memberClassEntry struct {
	MemberClass string `json:"member_class"`
	Value       int    `json:"value"`
}

type actionRecord struct {
	Kind    string `json:"kind"`
	OK      bool   `json:"ok"`
	Code    int    `json:"code"`
	Outcome string `json:"outcome"`
}

func (w *Writer) stateRecord(state circulation.LibraryState) stateRecord {
	record := stateRecord{
		Kind:      "state",
		Day:       state.Day(),
		Available: []availableEntry{},
		Loans:     []memberClassEntry{},
		Fines:     []memberClassEntry{},
	}

	for _, title := range state.Titles() {
		record.Available = append(record.Available, availableEntry{Title: w.titleLabel(title), Copies: state.AvailableCopies(title)})
	}

	for _, memberClass := range state.MemberClasses() {
		label := w.memberClassLabel(memberClass)
		record.Loans = append(record.Loans, memberClassEntry{MemberClass: label, Value: state.ActiveLoans(memberClass)})
		record.Fines = append(record.Fines, memberClassEntry{MemberClass: label, Value: state.OutstandingFines(memberClass)})
	}

	return record
}
