package circulation

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidPolicy is returned (joined with the concrete violations) by Policy.Validate.
var ErrInvalidPolicy = errors.New("invalid circulation policy")

// Reference values of the default policy.
const (
	DefaultStartDay           Day        = 1
	DefaultLoanLimit                     = 2
	DefaultFineCeiling        MinorUnits = 2000
	DefaultLateFeePerDay      MinorUnits = 75
	defaultPrivilegedLoanLimit           = 3
)

// TitlePolicy configures one catalog title.
type TitlePolicy struct {
	ID             TitleID
	Label          string
	StartingCopies int
}

// MemberClassPolicy configures the borrowing rules of one member class.
type MemberClassPolicy struct {
	ID          MemberClassID
	Label       string
	LoanLimit   int
	FineCeiling MinorUnits
}

// Policy holds every tunable rule of the engine.
// Member classes that are not listed fall back to DefaultLoanLimit and DefaultFineCeiling.
type Policy struct {
	StartDay           Day
	Titles             []TitlePolicy
	MemberClasses      []MemberClassPolicy
	DefaultLoanLimit   int
	DefaultFineCeiling MinorUnits
	LateFeePerDay      MinorUnits
}

// DefaultPolicy returns the reference configuration: three titles with 3/2/1 copies,
// member class 1 may hold 3 loans and class 2 may hold 2, a fine ceiling of 2000 and a late fee of 75 per day.
func DefaultPolicy() Policy {
	return Policy{
		StartDay: DefaultStartDay,
		Titles: []TitlePolicy{
			{ID: 1, Label: "A", StartingCopies: 3},
			{ID: 2, Label: "B", StartingCopies: 2},
			{ID: 3, Label: "C", StartingCopies: 1},
		},
		MemberClasses: []MemberClassPolicy{
			{ID: 1, Label: "m1", LoanLimit: defaultPrivilegedLoanLimit, FineCeiling: DefaultFineCeiling},
			{ID: 2, Label: "m2", LoanLimit: DefaultLoanLimit, FineCeiling: DefaultFineCeiling},
		},
		DefaultLoanLimit:   DefaultLoanLimit,
		DefaultFineCeiling: DefaultFineCeiling,
		LateFeePerDay:      DefaultLateFeePerDay,
	}
}

// Validate checks the policy for values no library could operate with.
func (p Policy) Validate() error {
	var errs []error

	if p.StartDay < 0 {
		errs = append(errs, fmt.Errorf("start day %d is negative", p.StartDay))
	}

	if p.DefaultLoanLimit < 0 {
		errs = append(errs, fmt.Errorf("default loan limit %d is negative", p.DefaultLoanLimit))
	}

	if p.DefaultFineCeiling < 0 {
		errs = append(errs, fmt.Errorf("default fine ceiling %d is negative", p.DefaultFineCeiling))
	}

	if p.LateFeePerDay < 0 {
		errs = append(errs, fmt.Errorf("late fee per day %d is negative", p.LateFeePerDay))
	}

	seenTitles := make(map[TitleID]bool, len(p.Titles))
	for _, title := range p.Titles {
		if seenTitles[title.ID] {
			errs = append(errs, fmt.Errorf("title %d is configured twice", title.ID))
		}
		seenTitles[title.ID] = true

		if title.StartingCopies < 0 {
			errs = append(errs, fmt.Errorf("title %d has negative starting copies %d", title.ID, title.StartingCopies))
		}
	}

	seenClasses := make(map[MemberClassID]bool, len(p.MemberClasses))
	for _, memberClass := range p.MemberClasses {
		if seenClasses[memberClass.ID] {
			errs = append(errs, fmt.Errorf("member class %d is configured twice", memberClass.ID))
		}
		seenClasses[memberClass.ID] = true

		if memberClass.LoanLimit < 0 {
			errs = append(errs, fmt.Errorf("member class %d has negative loan limit %d", memberClass.ID, memberClass.LoanLimit))
		}

		if memberClass.FineCeiling < 0 {
			errs = append(errs, fmt.Errorf("member class %d has negative fine ceiling %d", memberClass.ID, memberClass.FineCeiling))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidPolicy}, errs...)...)
	}

	return nil
}

// LoanLimit returns how many loans the member class may hold at once.
func (p Policy) LoanLimit(memberClass MemberClassID) int {
	if mc, ok := p.memberClass(memberClass); ok {
		return mc.LoanLimit
	}

	return p.DefaultLoanLimit
}

// FineCeiling returns the highest fine balance at which the member class may still borrow.
func (p Policy) FineCeiling(memberClass MemberClassID) MinorUnits {
	if mc, ok := p.memberClass(memberClass); ok {
		return mc.FineCeiling
	}

	return p.DefaultFineCeiling
}

// TitleLabel returns the configured label of the title, or its id in decimal.
func (p Policy) TitleLabel(title TitleID) string {
	for _, t := range p.Titles {
		if t.ID == title && t.Label != "" {
			return t.Label
		}
	}

	return strconv.Itoa(title)
}

// MemberClassLabel returns the configured label of the member class, or its id in decimal.
func (p Policy) MemberClassLabel(memberClass MemberClassID) string {
	if mc, ok := p.memberClass(memberClass); ok && mc.Label != "" {
		return mc.Label
	}

	return strconv.Itoa(memberClass)
}

func (p Policy) memberClass(id MemberClassID) (MemberClassPolicy, bool) {
	for _, mc := range p.MemberClasses {
		if mc.ID == id {
			return mc, true
		}
	}

	return MemberClassPolicy{}, false
}
