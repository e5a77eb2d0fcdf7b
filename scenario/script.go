package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned for scripts without steps.
var ErrEmptyScript = errors.New("scenario has no steps")

// Script is a named sequence of steps.
// With HaltOnFailure the first refused action stops the run; otherwise refusals are only reported.
type Script struct {
	Name          string `yaml:"name"`
	HaltOnFailure bool   `yaml:"halt_on_failure"`
	Steps         []Step `yaml:"steps"`
}

func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}

	var errs []error
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}

	return errors.Join(errs...)
}

// DemoScript is the reference run against the default policy.
func DemoScript() Script {
	return Script{
		Name: "demo",
		Steps: []Step{
			{Action: ActionReportState},
			{Action: ActionCheckout, MemberClass: 1, Title: 1, Report: true},
			{Action: ActionCheckout, MemberClass: 2, Title: 1, Report: true},
			{Action: ActionCheckout, MemberClass: 2, Title: 3, Report: true},
			{Action: ActionAdvanceDay, Times: 4},
			{Action: ActionReturn, MemberClass: 2, Title: 1, LateDays: 5, Report: true},
			{Action: ActionPay, MemberClass: 2, Amount: 100},
			{Action: ActionReportState},
			{Action: ActionAdvanceDay, Times: 2},
			{Action: ActionCheckout, MemberClass: 1, Title: 2, Report: true},
			{Action: ActionReportState},
		},
	}
}

// ParseScriptYAML decodes and validates a script.
func ParseScriptYAML(data []byte) (Script, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Script{}, fmt.Errorf("scenario: payload is empty")
	}

	var script Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&script); err != nil {
		return Script{}, fmt.Errorf("scenario: decode: %w", err)
	}

	if err := script.Validate(); err != nil {
		return Script{}, fmt.Errorf("scenario: %w", err)
	}

	return script, nil
}

// LoadScriptFile reads and parses a YAML script from disk.
func LoadScriptFile(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	script, err := ParseScriptYAML(data)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}

	return script, nil
}
