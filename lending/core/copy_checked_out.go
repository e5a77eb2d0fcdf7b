package core

import (
	"time"
)

const CopyCheckedOutEventType = "CopyCheckedOut"

// CopyCheckedOut records that a member of MemberClass took one copy of Title on Day.
type CopyCheckedOut struct {
	MemberClass MemberClassID
	Title       TitleID
	Day         Day
	OccurredAt  OccurredAt
}

func BuildCopyCheckedOut(memberClass MemberClassID, title TitleID, day Day, occurredAt time.Time) CopyCheckedOut {
	return CopyCheckedOut{
		MemberClass: memberClass,
		Title:       title,
		Day:         day,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e CopyCheckedOut) EventType() string {
	return CopyCheckedOutEventType
}

func (e CopyCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CopyCheckedOut) IsErrorEvent() bool {
	return false
}
