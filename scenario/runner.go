package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrScenarioHalted is returned when a HaltOnFailure script hits a refused action.
var ErrScenarioHalted = errors.New("scenario halted")

// Reporter renders what the Runner asks it to; report.Writer implements it.
type Reporter interface {
	WriteState(state circulation.LibraryState) error
	WriteAction(result circulation.ActionResult) error
}

// StepResult is one executed action. Repetitions of a step share StepIndex.
type StepResult struct {
	StepIndex int
	Action    Action
	Result    circulation.ActionResult
}

// Trace is everything a run produced.
type Trace struct {
	Results []StepResult
	Final   circulation.LibraryState
}

// Equal compares outcomes and states, step by step.
func (t Trace) Equal(other Trace) bool {
	if len(t.Results) != len(other.Results) || !t.Final.Equal(other.Final) {
		return false
	}

	for i, r := range t.Results {
		o := other.Results[i]
		if r.StepIndex != o.StepIndex ||
			r.Action != o.Action ||
			r.Result.Success != o.Result.Success ||
			r.Result.Code != o.Result.Code ||
			!r.Result.State.Equal(o.Result.State) {

			return false
		}
	}

	return true
}

type Runner struct {
	library  Library
	reporter Reporter
	logger   *slog.Logger
}

type RunnerOption func(*Runner)

func WithReporter(reporter Reporter) RunnerOption {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

func NewRunner(library Library, opts ...RunnerOption) *Runner {
	runner := &Runner{
		library: library,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Run validates the script and executes it. On error the Trace holds everything up to the failure.
func (r *Runner) Run(ctx context.Context, script Script) (Trace, error) {
	var trace Trace

	if err := script.Validate(); err != nil {
		return trace, err
	}

	r.logger.InfoContext(ctx, "scenario started", "scenario", script.Name, "steps", len(script.Steps))

	for i, step := range script.Steps {
		for range step.repetitions() {
			if step.Action == ActionReportState {
				if err := r.reportState(ctx); err != nil {
					return trace, err
				}

				continue
			}

			result, err := r.execute(ctx, step)
			if err != nil {
				return trace, fmt.Errorf("scenario: step %d (%s): %w", i+1, step.Action, err)
			}

			trace.Results = append(trace.Results, StepResult{StepIndex: i, Action: step.Action, Result: result})
			trace.Final = result.State

			r.logger.DebugContext(ctx, "scenario step executed",
				"step", i+1,
				"action", string(step.Action),
				"ok", result.Success,
				"code", result.Code,
				"outcome", result.Outcome().String(),
			)

			if step.Report && r.reporter != nil {
				if err = r.reporter.WriteAction(result); err != nil {
					return trace, err
				}
			}

			if !result.Success && script.HaltOnFailure {
				r.logger.WarnContext(ctx, "scenario halted", "step", i+1, "code", result.Code)

				return trace, fmt.Errorf("%w: step %d (%s) failed with code %d", ErrScenarioHalted, i+1, step.Action, result.Code)
			}
		}
	}

	final, err := r.library.State(ctx)
	if err != nil {
		return trace, err
	}
	trace.Final = final

	r.logger.InfoContext(ctx, "scenario completed", "scenario", script.Name, "actions", len(trace.Results))

	return trace, nil
}

func (r *Runner) execute(ctx context.Context, step Step) (circulation.ActionResult, error) {
	switch step.Action {
	case ActionCheckout:
		return r.library.Checkout(ctx, step.MemberClass, step.Title)
	case ActionReturn:
		return r.library.Return(ctx, step.MemberClass, step.Title, step.LateDays)
	case ActionPay:
		return r.library.Pay(ctx, step.MemberClass, step.Amount)
	case ActionAdvanceDay:
		return r.library.AdvanceDay(ctx)
	default:
		return circulation.ActionResult{}, fmt.Errorf("%w: unknown action %q", ErrInvalidStep, step.Action)
	}
}

func (r *Runner) reportState(ctx context.Context) error {
	state, err := r.library.State(ctx)
	if err != nil {
		return err
	}

	if r.reporter == nil {
		return nil
	}

	return r.reporter.WriteState(state)
}
