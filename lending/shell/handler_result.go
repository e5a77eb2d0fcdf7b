package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/lending/core"
)

// HandlerResult is what a command handler reports besides an error: the business outcome of the
// decision and the retry metadata of its execution.
type HandlerResult struct {
	Success    bool
	Code       int  // engine outcome code, see circulation.ClassifyOutcome
	Idempotent bool // nothing was appended

	RetryAttempts    int // 1 without retries
	TotalRetryDelay  time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// NewDecisionResult builds the HandlerResult of a completed decision.
func NewDecisionResult(decision core.DecisionResult, retryMetrics RetryMetrics) HandlerResult {
	result := newResult(retryMetrics)
	result.Success = decision.IsSuccess()
	result.Code = decision.Code
	result.Idempotent = decision.IsIdempotent()

	return result
}

// NewErrorResult builds the HandlerResult of a handler that failed with an error.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newResult(retryMetrics)
}

func newResult(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
