package core

import (
	"time"
)

const CheckoutRefusedEventType = "CheckoutRefused"

// CheckoutRefused records a checkout that failed a business rule.
// Code is the outcome code of the engine, Reason its classification, e.g. "loan_limit_exceeded".
type CheckoutRefused struct {
	MemberClass MemberClassID
	Title       TitleID
	Day         Day
	Code        int
	Reason      string
	OccurredAt  OccurredAt
}

func BuildCheckoutRefused(
	memberClass MemberClassID,
	title TitleID,
	day Day,
	code int,
	reason string,
	occurredAt time.Time,
) CheckoutRefused {

	return CheckoutRefused{
		MemberClass: memberClass,
		Title:       title,
		Day:         day,
		Code:        code,
		Reason:      reason,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e CheckoutRefused) EventType() string {
	return CheckoutRefusedEventType
}

func (e CheckoutRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CheckoutRefused) IsErrorEvent() bool {
	return true
}
