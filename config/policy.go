package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// policyFile mirrors the YAML layout. Scalars are pointers so that omitted keys keep the reference values.
type policyFile struct {
	StartDay           *int               `yaml:"start_day"`
	DefaultLoanLimit   *int               `yaml:"default_loan_limit"`
	DefaultFineCeiling *int               `yaml:"default_fine_ceiling"`
	LateFeePerDay      *int               `yaml:"late_fee_per_day"`
	Titles             []titleEntry       `yaml:"titles"`
	MemberClasses      []memberClassEntry `yaml:"member_classes"`
}

type titleEntry struct {
	ID             int    `yaml:"id"`
	Label          string `yaml:"label"`
	StartingCopies int    `yaml:"starting_copies"`
}

type memberClassEntry struct {
	ID          int    `yaml:"id"`
	Label       string `yaml:"label"`
	LoanLimit   *int   `yaml:"loan_limit"`
	FineCeiling *int   `yaml:"fine_ceiling"`
}

// LoadPolicyFile reads a policy from disk. An empty path yields circulation.DefaultPolicy().
func LoadPolicyFile(path string) (circulation.Policy, error) {
	if path == "" {
		return circulation.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return circulation.Policy{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	policy, err := ParsePolicyYAML(data)
	if err != nil {
		return circulation.Policy{}, fmt.Errorf("%s: %w", path, err)
	}

	return policy, nil
}

// ParsePolicyYAML decodes a policy and validates it.
//
// Omitted scalars keep the reference values. A titles or member_classes list replaces the reference
// list as a whole, and member classes without loan_limit or fine_ceiling inherit the policy defaults.
func ParsePolicyYAML(data []byte) (circulation.Policy, error) {
	policy := circulation.DefaultPolicy()

	if len(bytes.TrimSpace(data)) == 0 {
		return policy, nil
	}

	var file policyFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return circulation.Policy{}, fmt.Errorf("config: decode policy: %w", err)
	}

	file.applyTo(&policy)

	if err := policy.Validate(); err != nil {
		return circulation.Policy{}, fmt.Errorf("config: %w", err)
	}

	return policy, nil
}

func (f policyFile) applyTo(policy *circulation.Policy) {
	if f.StartDay != nil {
		policy.StartDay = *f.StartDay
	}

	if f.DefaultLoanLimit != nil {
		policy.DefaultLoanLimit = *f.DefaultLoanLimit
	}

	if f.DefaultFineCeiling != nil {
		policy.DefaultFineCeiling = *f.DefaultFineCeiling
	}

	if f.LateFeePerDay != nil {
		policy.LateFeePerDay = *f.LateFeePerDay
	}

	if f.Titles != nil {
		policy.Titles = make([]circulation.TitlePolicy, 0, len(f.Titles))
		for _, t := range f.Titles {
			policy.Titles = append(policy.Titles, circulation.TitlePolicy{
				ID:             t.ID,
				Label:          t.Label,
				StartingCopies: t.StartingCopies,
			})
		}
	}

	if f.MemberClasses != nil {
		policy.MemberClasses = make([]circulation.MemberClassPolicy, 0, len(f.MemberClasses))
		for _, mc := range f.MemberClasses {
			memberClass := circulation.MemberClassPolicy{
				ID:          mc.ID,
				Label:       mc.Label,
				LoanLimit:   policy.DefaultLoanLimit,
				FineCeiling: policy.DefaultFineCeiling,
			}

			if mc.LoanLimit != nil {
				memberClass.LoanLimit = *mc.LoanLimit
			}

			if mc.FineCeiling != nil {
				memberClass.FineCeiling = *mc.FineCeiling
			}

			policy.MemberClasses = append(policy.MemberClasses, memberClass)
		}
	}
}
