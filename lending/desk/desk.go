package desk

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/advanceday"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/checkout"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/librarystate"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/payfine"
	"github.com/AntonStoeckl/library-circulation-go/lending/features/returncopy"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell"
	"github.com/AntonStoeckl/library-circulation-go/lending/shell/observable"
)

// ErrNilJournal is returned by NewDesk without a journal.
var ErrNilJournal = errors.New("journal must not be nil")

// Desk serves one library session. All events it appends share its correlation id.
type Desk struct {
	policy        circulation.Policy
	correlationID uuid.UUID
	now           func() time.Time

	checkout   shell.CoreCommandHandler[checkout.Command]
	returnCopy shell.CoreCommandHandler[returncopy.Command]
	payFine    shell.CoreCommandHandler[payfine.Command]
	advanceDay shell.CoreCommandHandler[advanceday.Command]
	state      librarystate.QueryHandler
}

type config struct {
	correlationID    uuid.UUID
	now              func() time.Time
	retryOptions     []shell.RetryOption
	snapshotsEnabled bool
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewDesk validates the policy and wires the command and query handlers to the journal.
// The handlers are wrapped with observability when any observability option is given.
func NewDesk(j *journal.Journal, policy circulation.Policy, opts ...Option) (*Desk, error) {
	if j == nil {
		return nil, ErrNilJournal
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	cfg := config{
		correlationID:    uuid.New(),
		now:              time.Now,
		snapshotsEnabled: true,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	d := &Desk{
		policy:        policy,
		correlationID: cfg.correlationID,
		now:           cfg.now,
		state:         librarystate.NewQueryHandler(j, policy, cfg.queryOptions()...),
	}

	var err error

	d.checkout, err = wrap[checkout.Command](cfg, checkout.NewCommandHandler(
		j, policy, checkout.WithCorrelationID(cfg.correlationID), checkout.WithRetryOptions(cfg.retryOptions...),
	))
	if err != nil {
		return nil, err
	}

	d.returnCopy, err = wrap[returncopy.Command](cfg, returncopy.NewCommandHandler(
		j, policy, returncopy.WithCorrelationID(cfg.correlationID), returncopy.WithRetryOptions(cfg.retryOptions...),
	))
	if err != nil {
		return nil, err
	}

	d.payFine, err = wrap[payfine.Command](cfg, payfine.NewCommandHandler(
		j, policy, payfine.WithCorrelationID(cfg.correlationID), payfine.WithRetryOptions(cfg.retryOptions...),
	))
	if err != nil {
		return nil, err
	}

	d.advanceDay, err = wrap[advanceday.Command](cfg, advanceday.NewCommandHandler(
		j, policy, advanceday.WithCorrelationID(cfg.correlationID), advanceday.WithRetryOptions(cfg.retryOptions...),
	))
	if err != nil {
		return nil, err
	}

	return d, nil
}

// CorrelationID identifies the session in the metadata of every appended event.
func (d *Desk) CorrelationID() uuid.UUID {
	return d.correlationID
}

// Policy returns the validated policy the desk decides with.
func (d *Desk) Policy() circulation.Policy {
	return d.policy
}

// Checkout lends one copy of title to memberClass, or reports why it cannot.
func (d *Desk) Checkout(
	ctx context.Context,
	memberClass circulation.MemberClassID,
	title circulation.TitleID,
) (circulation.ActionResult, error) {

	result, err := d.checkout.Handle(ctx, checkout.BuildCommand(memberClass, title, d.now()))

	return d.actionResult(ctx, result, err)
}

// Return takes a copy back; it only fails on infrastructure errors.
func (d *Desk) Return(
	ctx context.Context,
	memberClass circulation.MemberClassID,
	title circulation.TitleID,
	lateDays int,
) (circulation.ActionResult, error) {

	result, err := d.returnCopy.Handle(ctx, returncopy.BuildCommand(memberClass, title, lateDays, d.now()))

	return d.actionResult(ctx, result, err)
}

// Pay settles fines of memberClass. Nothing is journaled when amount is not positive or
// nothing is owed.
func (d *Desk) Pay(
	ctx context.Context,
	memberClass circulation.MemberClassID,
	amount circulation.MinorUnits,
) (circulation.ActionResult, error) {

	result, err := d.payFine.Handle(ctx, payfine.BuildCommand(memberClass, amount, d.now()))

	return d.actionResult(ctx, result, err)
}

// AdvanceDay moves the library to the next day.
func (d *Desk) AdvanceDay(ctx context.Context) (circulation.ActionResult, error) {
	result, err := d.advanceDay.Handle(ctx, advanceday.BuildCommand(d.now()))

	return d.actionResult(ctx, result, err)
}

// State projects the current state from the journal.
func (d *Desk) State(ctx context.Context) (circulation.LibraryState, error) {
	return d.state.Handle(ctx, librarystate.BuildQuery())
}

func (d *Desk) actionResult(ctx context.Context, result shell.HandlerResult, err error) (circulation.ActionResult, error) {
	if err != nil {
		return circulation.ActionResult{}, err
	}

	state, err := d.State(ctx)
	if err != nil {
		return circulation.ActionResult{}, err
	}

	if !result.Success {
		return circulation.Failed(state, result.Code), nil
	}

	return circulation.SucceededWithCode(state, result.Code), nil
}

func wrap[C shell.Command](cfg config, coreHandler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	if !cfg.observable() {
		return coreHandler, nil
	}

	wrapper, err := observable.NewCommandWrapper[C](
		coreHandler,
		observable.WithCommandMetrics[C](cfg.metricsCollector),
		observable.WithCommandTracing[C](cfg.tracingCollector),
		observable.WithCommandContextualLogging[C](cfg.contextualLogger),
		observable.WithCommandLogging[C](cfg.logger),
		observable.WithCommandClock[C](cfg.now),
	)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func (c config) observable() bool {
	return c.metricsCollector != nil || c.tracingCollector != nil || c.contextualLogger != nil || c.logger != nil
}

func (c config) queryOptions() []librarystate.Option {
	opts := []librarystate.Option{
		librarystate.WithMetrics(c.metricsCollector),
		librarystate.WithContextualLogging(c.contextualLogger),
		librarystate.WithLogging(c.logger),
	}

	if !c.snapshotsEnabled {
		opts = append(opts, librarystate.WithoutSnapshots())
	}

	return opts
}
