package scenario

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Library is what a Runner drives. Errors are infrastructure failures; refusals are ActionResults.
type Library interface {
	Checkout(ctx context.Context, memberClass circulation.MemberClassID, title circulation.TitleID) (circulation.ActionResult, error)
	Return(ctx context.Context, memberClass circulation.MemberClassID, title circulation.TitleID, lateDays int) (circulation.ActionResult, error)
	Pay(ctx context.Context, memberClass circulation.MemberClassID, amount circulation.MinorUnits) (circulation.ActionResult, error)
	AdvanceDay(ctx context.Context) (circulation.ActionResult, error)
	State(ctx context.Context) (circulation.LibraryState, error)
}

// EngineLibrary threads one snapshot through the engine functions. It is not safe for concurrent use.
type EngineLibrary struct {
	policy circulation.Policy
	state  circulation.LibraryState
}

func NewEngineLibrary(policy circulation.Policy) *EngineLibrary {
	return &EngineLibrary{
		policy: policy,
		state:  circulation.Seed(policy),
	}
}

func (l *EngineLibrary) Checkout(
	_ context.Context,
	memberClass circulation.MemberClassID,
	title circulation.TitleID,
) (circulation.ActionResult, error) {

	return l.apply(circulation.Checkout(l.state, l.policy, memberClass, title)), nil
}

func (l *EngineLibrary) Return(
	_ context.Context,
	memberClass circulation.MemberClassID,
	title circulation.TitleID,
	lateDays int,
) (circulation.ActionResult, error) {

	return l.apply(circulation.Return(l.state, l.policy, memberClass, title, lateDays)), nil
}

func (l *EngineLibrary) Pay(
	_ context.Context,
	memberClass circulation.MemberClassID,
	amount circulation.MinorUnits,
) (circulation.ActionResult, error) {

	return l.apply(circulation.Succeeded(circulation.Pay(l.state, memberClass, amount))), nil
}

func (l *EngineLibrary) AdvanceDay(_ context.Context) (circulation.ActionResult, error) {
	return l.apply(circulation.Succeeded(circulation.AdvanceDay(l.state))), nil
}

func (l *EngineLibrary) State(_ context.Context) (circulation.LibraryState, error) {
	return l.state, nil
}

func (l *EngineLibrary) apply(result circulation.ActionResult) circulation.ActionResult {
	l.state = result.State

	return result
}
