package circulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_DefaultPolicy_IsValid(t *testing.T) {
	policy := circulation.DefaultPolicy()

	assert.NoError(t, policy.Validate())
	assert.Equal(t, 3, policy.LoanLimit(1))
	assert.Equal(t, 2, policy.LoanLimit(2))
	assert.Equal(t, 2, policy.LoanLimit(99), "unlisted classes use the default limit")
	assert.Equal(t, 2000, policy.FineCeiling(1))
	assert.Equal(t, 2000, policy.FineCeiling(99))
	assert.Equal(t, 75, policy.LateFeePerDay)
}

func Test_Policy_Validate_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		mutate         func(p *circulation.Policy)
		expectedReason string
	}{
		{
			name:           "negative start day",
			mutate:         func(p *circulation.Policy) { p.StartDay = -1 },
			expectedReason: "start day -1 is negative",
		},
		{
			name:           "negative late fee",
			mutate:         func(p *circulation.Policy) { p.LateFeePerDay = -75 },
			expectedReason: "late fee per day -75 is negative",
		},
		{
			name: "duplicate title",
			mutate: func(p *circulation.Policy) {
				p.Titles = append(p.Titles, circulation.TitlePolicy{ID: 1, StartingCopies: 1})
			},
			expectedReason: "title 1 is configured twice",
		},
		{
			name:           "negative starting copies",
			mutate:         func(p *circulation.Policy) { p.Titles[2].StartingCopies = -1 },
			expectedReason: "title 3 has negative starting copies -1",
		},
		{
			name: "duplicate member class",
			mutate: func(p *circulation.Policy) {
				p.MemberClasses = append(p.MemberClasses, circulation.MemberClassPolicy{ID: 2})
			},
			expectedReason: "member class 2 is configured twice",
		},
		{
			name:           "negative loan limit",
			mutate:         func(p *circulation.Policy) { p.MemberClasses[0].LoanLimit = -3 },
			expectedReason: "member class 1 has negative loan limit -3",
		},
		{
			name:           "negative fine ceiling",
			mutate:         func(p *circulation.Policy) { p.DefaultFineCeiling = -1 },
			expectedReason: "default fine ceiling -1 is negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			policy := circulation.DefaultPolicy()
			tc.mutate(&policy)

			// act
			err := policy.Validate()

			// assert
			assert.ErrorIs(t, err, circulation.ErrInvalidPolicy)
			assert.ErrorContains(t, err, tc.expectedReason)
		})
	}
}

func Test_Policy_Labels(t *testing.T) {
	policy := circulation.DefaultPolicy()

	assert.Equal(t, "A", policy.TitleLabel(1))
	assert.Equal(t, "C", policy.TitleLabel(3))
	assert.Equal(t, "42", policy.TitleLabel(42))
	assert.Equal(t, "m2", policy.MemberClassLabel(2))
	assert.Equal(t, "9", policy.MemberClassLabel(9))
}
