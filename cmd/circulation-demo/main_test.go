package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Run_DemoScriptReportsFinalState(t *testing.T) {
	// arrange
	var stdout, stderr bytes.Buffer

	// act
	err := run(context.Background(), nil, &stdout, &stderr)

	// assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "day\n1\navailable_a\n3\n"))
	assert.True(t, strings.HasSuffix(stdout.String(), "day\n7\navailable_a\n2\navailable_b\n1\navailable_c\n0\n"+
		"loans_m1\n2\nloans_m2\n1\nfines_m1\n0\nfines_m2\n275\n"))
	assert.Empty(t, stderr.String())
}

func Test_Run_JSONFormatWithObservability(t *testing.T) {
	// arrange
	var stdout, stderr bytes.Buffer

	// act
	err := run(context.Background(), []string{"-format", "json", "-observability-enabled", "-log-level", "info"}, &stdout, &stderr)

	// assert
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, lines[0], `"kind":"state"`)
	assert.Contains(t, stderr.String(), "demo finished")
	assert.Contains(t, stderr.String(), "metrics collected")
}

func Test_Run_CustomPolicyAndScenario(t *testing.T) {
	// arrange
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.yaml")
	scenarioPath := filepath.Join(dir, "scenario.yaml")

	require.NoError(t, os.WriteFile(policyPath, []byte("titles: [{id: 1, label: X, starting_copies: 1}]\n"), 0o600))
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`
name: short
steps:
  - {action: checkout, member_class: 1, title: 1, report: true}
  - {action: checkout, member_class: 2, title: 1, report: true}
`), 0o600))

	var stdout, stderr bytes.Buffer

	// act
	err := run(context.Background(), []string{"-policy", policyPath, "-scenario", scenarioPath}, &stdout, &stderr)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "action_ok\ntrue\naction_code\n0\naction_ok\nfalse\naction_code\n201\n", stdout.String())
}

func Test_Run_ConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "unknown format", args: []string{"-format", "xml"}, errContains: "unknown format"},
		{name: "unknown log level", args: []string{"-log-level", "loud"}, errContains: "invalid log level"},
		{name: "missing policy", args: []string{"-policy", "does-not-exist.yaml"}, errContains: "does-not-exist.yaml"},
		{name: "missing scenario", args: []string{"-scenario", "does-not-exist.yaml"}, errContains: "does-not-exist.yaml"},
		{name: "unknown flag", args: []string{"-verbose"}, errContains: "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(context.Background(), tc.args, &stdout, &stderr)

			assert.ErrorContains(t, err, tc.errContains)
			assert.Empty(t, stdout.String())
		})
	}
}
