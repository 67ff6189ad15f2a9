package services

import (
	"context"
	"fmt"

	"batch-gateway-server/models"
)

// Invoker is the host-supplied primitive for dispatching a single call that
// may mutate state at its target. Transport-level failures are reported the
// same way as target-level failures: an Outcome with Success=false whose Data
// holds the diagnostic bytes.
type Invoker interface {
	Invoke(ctx context.Context, call models.Call) models.Outcome
}

// QueryInvoker is the host-supplied primitive for read-only dispatch. An
// implementation must guarantee no observable state change at the target; if
// it cannot guarantee this for a given target it must fail closed and return
// a failure outcome instead of dispatching.
type QueryInvoker interface {
	Query(ctx context.Context, call models.Call) models.Outcome
}

// AbortError is the single error kind produced by atomic-policy operations.
// Index is the position of the first failing call; Data carries that call's
// diagnostic payload verbatim, without wrapping or reinterpretation.
type AbortError struct {
	Index int
	Data  []byte
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("batch aborted at call %d: %s", e.Index, e.Data)
}

// BatchExecutor dispatches an ordered batch of calls one at a time through
// the host invocation primitives. It keeps no state of its own: each call's
// budget passes through unmodified, and a sub-call's effects are visible to
// the calls after it. Atomic-policy operations stop at the first failure but
// never undo effects already committed; rollback, if wanted, is the caller's
// responsibility.
type BatchExecutor struct {
	invoker Invoker
	querier QueryInvoker
}

func NewBatchExecutor(invoker Invoker, querier QueryInvoker) *BatchExecutor {
	return &BatchExecutor{invoker: invoker, querier: querier}
}

// Execute dispatches calls in order and aborts on the first failure,
// returning an *AbortError that carries the failing call's diagnostic
// payload. Calls after the failing one are never dispatched. An empty batch
// succeeds without dispatching anything.
func (e *BatchExecutor) Execute(ctx context.Context, calls []models.Call) error {
	for i, call := range calls {
		out := e.invoker.Invoke(ctx, call)
		if !out.Success {
			return &AbortError{Index: i, Data: out.Data}
		}
	}
	return nil
}

// TryExecute dispatches every call in order exactly once, regardless of
// individual failures. Failed outcomes are discarded; it never fails.
func (e *BatchExecutor) TryExecute(ctx context.Context, calls []models.Call) {
	for _, call := range calls {
		e.invoker.Invoke(ctx, call)
	}
}

// Query dispatches calls read-only in order and aborts on the first failure
// without returning partial results. On success the returned outcomes are
// index-aligned with calls.
func (e *BatchExecutor) Query(ctx context.Context, calls []models.Call) ([]models.Outcome, error) {
	outcomes := make([]models.Outcome, 0, len(calls))
	for i, call := range calls {
		out := e.querier.Query(ctx, call)
		if !out.Success {
			return nil, &AbortError{Index: i, Data: out.Data}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// TryQuery dispatches every call read-only in order and records each outcome
// at its call's position, so the result is always index-aligned with calls
// and failures surface as Success=false entries.
func (e *BatchExecutor) TryQuery(ctx context.Context, calls []models.Call) []models.Outcome {
	outcomes := make([]models.Outcome, 0, len(calls))
	for _, call := range calls {
		outcomes = append(outcomes, e.querier.Query(ctx, call))
	}
	return outcomes
}
