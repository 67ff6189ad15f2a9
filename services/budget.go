package services

import (
	"context"
	"fmt"

	"batch-gateway-server/models"
)

// BudgetCap wraps an Invoker and enforces a whole-batch budget on the host
// side: a dispatch whose budget would push the running total over the cap is
// rejected with a failure outcome before it reaches the inner invoker.
// Forwarded calls keep their budget byte-for-byte unchanged. A BudgetCap is
// built fresh for each batch run and is not safe for concurrent use; batch
// dispatch is strictly sequential so none is needed.
type BudgetCap struct {
	inner     Invoker
	remaining uint64
}

func NewBudgetCap(inner Invoker, total uint64) *BudgetCap {
	return &BudgetCap{inner: inner, remaining: total}
}

func (b *BudgetCap) Invoke(ctx context.Context, call models.Call) models.Outcome {
	if call.Budget > b.remaining {
		return models.Outcome{
			Success: false,
			Data:    []byte(fmt.Sprintf("budget exceeded: call requires %d, %d remaining", call.Budget, b.remaining)),
		}
	}
	b.remaining -= call.Budget
	return b.inner.Invoke(ctx, call)
}

// Remaining returns the budget still available to later calls in the batch.
func (b *BudgetCap) Remaining() uint64 {
	return b.remaining
}
