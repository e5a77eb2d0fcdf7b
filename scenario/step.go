package scenario

import (
	"errors"
	"fmt"
)

// ErrInvalidStep is returned (joined with the concrete problem) for steps that cannot run.
var ErrInvalidStep = errors.New("invalid scenario step")

type Action string

const (
	ActionCheckout    Action = "checkout"
	ActionReturn      Action = "return"
	ActionPay         Action = "pay"
	ActionAdvanceDay  Action = "advance_day"
	ActionReportState Action = "report_state"
)

// Step is one line of a Script. Times repeats the step, 0 counts as 1.
// Report writes the ActionResult of each repetition to the reporter.
type Step struct {
	Action      Action `yaml:"action"`
	MemberClass int    `yaml:"member_class,omitempty"`
	Title       int    `yaml:"title,omitempty"`
	LateDays    int    `yaml:"late_days,omitempty"`
	Amount      int    `yaml:"amount,omitempty"`
	Times       int    `yaml:"times,omitempty"`
	Report      bool   `yaml:"report,omitempty"`
}

func (s Step) Validate() error {
	if s.Times < 0 {
		return errors.Join(ErrInvalidStep, fmt.Errorf("%s: times %d is negative", s.Action, s.Times))
	}

	switch s.Action {
	case ActionCheckout, ActionReturn:
		if s.MemberClass == 0 || s.Title == 0 {
			return errors.Join(ErrInvalidStep, fmt.Errorf("%s: member_class and title are required", s.Action))
		}
	case ActionPay:
		if s.MemberClass == 0 {
			return errors.Join(ErrInvalidStep, fmt.Errorf("%s: member_class is required", s.Action))
		}
	case ActionAdvanceDay, ActionReportState:
	default:
		return errors.Join(ErrInvalidStep, fmt.Errorf("unknown action %q", s.Action))
	}

	return nil
}

func (s Step) repetitions() int {
	return max(s.Times, 1)
}
