package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/config"
)

func Test_LoadPolicyFile_EmptyPathYieldsDefaultPolicy(t *testing.T) {
	// act
	policy, err := config.LoadPolicyFile("")

	// assert
	require.NoError(t, err)
	assert.Equal(t, circulation.DefaultPolicy(), policy)
}

func Test_ParsePolicyYAML_OmittedKeysKeepReferenceValues(t *testing.T) {
	// act
	policy, err := config.ParsePolicyYAML([]byte("late_fee_per_day: 50\n"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 50, policy.LateFeePerDay)
	assert.Equal(t, circulation.DefaultPolicy().Titles, policy.Titles)
	assert.Equal(t, circulation.DefaultPolicy().MemberClasses, policy.MemberClasses)
	assert.Equal(t, circulation.DefaultStartDay, policy.StartDay)
}

func Test_ParsePolicyYAML_ListsReplaceReferenceLists(t *testing.T) {
	// arrange
	data := []byte(`
start_day: 10
default_loan_limit: 4
default_fine_ceiling: 500
titles:
  - {id: 7, label: Dune, starting_copies: 5}
member_classes:
  - {id: 1, label: staff, loan_limit: 9}
  - {id: 3, label: guest, fine_ceiling: 0}
`)

	// act
	policy, err := config.ParsePolicyYAML(data)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 10, policy.StartDay)
	assert.Equal(t, []circulation.TitlePolicy{{ID: 7, Label: "Dune", StartingCopies: 5}}, policy.Titles)
	assert.Equal(t, []circulation.MemberClassPolicy{
		{ID: 1, Label: "staff", LoanLimit: 9, FineCeiling: 500},
		{ID: 3, Label: "guest", LoanLimit: 4, FineCeiling: 0},
	}, policy.MemberClasses)
	assert.Equal(t, 4, policy.LoanLimit(2))
	assert.Equal(t, 5, circulation.Seed(policy).AvailableCopies(7))
}

func Test_ParsePolicyYAML_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{name: "unknown field", yaml: "renewals: 2\n", errContains: "renewals"},
		{name: "malformed", yaml: "titles: [\n", errContains: "decode policy"},
		{name: "negative fee", yaml: "late_fee_per_day: -1\n", errContains: "late fee per day -1 is negative"},
		{name: "duplicate title", yaml: "titles: [{id: 1}, {id: 1}]\n", errContains: "title 1 is configured twice"},
		{name: "negative copies", yaml: "titles: [{id: 1, starting_copies: -2}]\n", errContains: "negative starting copies"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.ParsePolicyYAML([]byte(tc.yaml))
			assert.ErrorContains(t, err, tc.errContains)
		})
	}
}

func Test_ParsePolicyYAML_InvalidPolicyWrapsSentinel(t *testing.T) {
	// act
	_, err := config.ParsePolicyYAML([]byte("start_day: -3\n"))

	// assert
	assert.ErrorIs(t, err, circulation.ErrInvalidPolicy)
}

func Test_LoadPolicyFile(t *testing.T) {
	t.Run("reads the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("late_fee_per_day: 10\n"), 0o600))

		policy, err := config.LoadPolicyFile(path)

		require.NoError(t, err)
		assert.Equal(t, 10, policy.LateFeePerDay)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("prefixes parse errors with the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nope: 1\n"), 0o600))

		_, err := config.LoadPolicyFile(path)

		assert.ErrorContains(t, err, path)
	})
}
