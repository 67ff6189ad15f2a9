package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"batch-gateway-server/models"
)

func TestBudgetCap_ForwardsWithinCap(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{
		"A": {Success: true},
		"B": {Success: true},
	})
	limiter := NewBudgetCap(prim, 100)

	out := limiter.Invoke(context.Background(), models.Call{Target: "A", Budget: 60})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	out = limiter.Invoke(context.Background(), models.Call{Target: "B", Budget: 40})
	if !out.Success {
		t.Fatalf("expected success, got %+v", out)
	}
	if limiter.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", limiter.Remaining())
	}
	if prim.invoked[0].Budget != 60 || prim.invoked[1].Budget != 40 {
		t.Fatalf("budgets modified in flight: %v", prim.invoked)
	}
}

func TestBudgetCap_RejectsOverCapWithoutDispatch(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{"A": {Success: true}})
	limiter := NewBudgetCap(prim, 50)

	out := limiter.Invoke(context.Background(), models.Call{Target: "A", Budget: 60})
	if out.Success {
		t.Fatal("expected over-budget call to be rejected")
	}
	if len(out.Data) == 0 {
		t.Fatal("expected diagnostic payload on rejection")
	}
	if len(prim.invoked) != 0 {
		t.Fatal("rejected call must not reach the inner invoker")
	}
	// A rejected call consumes nothing
	if limiter.Remaining() != 50 {
		t.Fatalf("expected 50 remaining, got %d", limiter.Remaining())
	}
}

func TestBudgetCap_ZeroBudgetAlwaysPasses(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{"A": {Success: true}})
	limiter := NewBudgetCap(prim, 0)

	out := limiter.Invoke(context.Background(), models.Call{Target: "A"})
	if !out.Success {
		t.Fatalf("zero-budget call rejected: %+v", out)
	}
}

func TestBudgetCap_AtomicBatchAbortsAtOverBudgetCall(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{
		"A": {Success: true},
		"B": {Success: true},
	})
	exec := NewBatchExecutor(NewBudgetCap(prim, 70), prim)

	calls := []models.Call{
		{Target: "A", Budget: 60},
		{Target: "B", Budget: 20},
	}
	err := exec.Execute(context.Background(), calls)

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("expected *AbortError, got %v", err)
	}
	if abort.Index != 1 {
		t.Fatalf("expected abort at call 1, got %d", abort.Index)
	}
	if !bytes.Contains(abort.Data, []byte("budget exceeded")) {
		t.Fatalf("unexpected abort payload: %q", abort.Data)
	}
	if len(prim.invoked) != 1 {
		t.Fatalf("expected only the first call dispatched, got %d", len(prim.invoked))
	}
}
