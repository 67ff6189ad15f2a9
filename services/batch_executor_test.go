package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"batch-gateway-server/models"
)

// fakePrimitive scripts per-target outcomes and records every dispatch so
// tests can assert order, count, and which primitive was used.
type fakePrimitive struct {
	outcomes map[string]models.Outcome
	invoked  []models.Call
	queried  []models.Call
}

func newFakePrimitive(outcomes map[string]models.Outcome) *fakePrimitive {
	return &fakePrimitive{outcomes: outcomes}
}

func (f *fakePrimitive) Invoke(ctx context.Context, call models.Call) models.Outcome {
	f.invoked = append(f.invoked, call)
	return f.outcomes[call.Target]
}

func (f *fakePrimitive) Query(ctx context.Context, call models.Call) models.Outcome {
	f.queried = append(f.queried, call)
	return f.outcomes[call.Target]
}

func scenarioCalls() []models.Call {
	return []models.Call{
		{Target: "A", Payload: []byte("payloadX")},
		{Target: "B", Payload: []byte("payloadY")},
		{Target: "C", Payload: []byte("payloadZ")},
	}
}

func scenarioOutcomes() map[string]models.Outcome {
	return map[string]models.Outcome{
		"A": {Success: true, Data: []byte("X-response")},
		"B": {Success: false, Data: []byte("insufficient funds")},
		"C": {Success: true, Data: []byte("Z-response")},
	}
}

func TestExecute_AbortsOnFirstFailure(t *testing.T) {
	prim := newFakePrimitive(scenarioOutcomes())
	exec := NewBatchExecutor(prim, prim)

	err := exec.Execute(context.Background(), scenarioCalls())
	if err == nil {
		t.Fatal("expected abort error")
	}

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("expected *AbortError, got %T", err)
	}
	if abort.Index != 1 {
		t.Fatalf("expected abort at call 1, got %d", abort.Index)
	}
	if !bytes.Equal(abort.Data, []byte("insufficient funds")) {
		t.Fatalf("unexpected abort payload: %q", abort.Data)
	}

	// A and B dispatched exactly once, C never
	if len(prim.invoked) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(prim.invoked))
	}
	if prim.invoked[0].Target != "A" || prim.invoked[1].Target != "B" {
		t.Fatalf("unexpected dispatch order: %v", prim.invoked)
	}
}

func TestExecute_AllSuccess(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{
		"A": {Success: true},
		"B": {Success: true},
		"C": {Success: true},
	})
	exec := NewBatchExecutor(prim, prim)

	if err := exec.Execute(context.Background(), scenarioCalls()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(prim.invoked) != 3 {
		t.Fatalf("expected 3 dispatches, got %d", len(prim.invoked))
	}
	for i, want := range []string{"A", "B", "C"} {
		if prim.invoked[i].Target != want {
			t.Fatalf("dispatch %d: expected %s, got %s", i, want, prim.invoked[i].Target)
		}
	}
}

func TestTryExecute_DispatchesEverythingOnce(t *testing.T) {
	prim := newFakePrimitive(scenarioOutcomes())
	exec := NewBatchExecutor(prim, prim)

	exec.TryExecute(context.Background(), scenarioCalls())

	if len(prim.invoked) != 3 {
		t.Fatalf("expected all 3 calls dispatched, got %d", len(prim.invoked))
	}
}

func TestQuery_AbortsWithoutPartialResults(t *testing.T) {
	prim := newFakePrimitive(scenarioOutcomes())
	exec := NewBatchExecutor(prim, prim)

	outcomes, err := exec.Query(context.Background(), scenarioCalls())
	if err == nil {
		t.Fatal("expected abort error")
	}
	if outcomes != nil {
		t.Fatalf("expected no partial results, got %v", outcomes)
	}

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("expected *AbortError, got %T", err)
	}
	if !bytes.Equal(abort.Data, []byte("insufficient funds")) {
		t.Fatalf("unexpected abort payload: %q", abort.Data)
	}
	if len(prim.queried) != 2 {
		t.Fatalf("expected 2 query dispatches, got %d", len(prim.queried))
	}
	if len(prim.invoked) != 0 {
		t.Fatalf("query used the mutating primitive: %v", prim.invoked)
	}
}

func TestQuery_AllSuccessIndexAligned(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{
		"A": {Success: true, Data: []byte("a")},
		"B": {Success: true, Data: []byte("b")},
		"C": {Success: true, Data: []byte("c")},
	})
	exec := NewBatchExecutor(prim, prim)

	calls := scenarioCalls()
	outcomes, err := exec.Query(context.Background(), calls)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(outcomes) != len(calls) {
		t.Fatalf("expected %d outcomes, got %d", len(calls), len(outcomes))
	}
	for i, want := range []string{"a", "b", "c"} {
		if !bytes.Equal(outcomes[i].Data, []byte(want)) {
			t.Fatalf("outcome %d: expected %q, got %q", i, want, outcomes[i].Data)
		}
	}
}

func TestTryQuery_FailuresAreDataNotErrors(t *testing.T) {
	prim := newFakePrimitive(scenarioOutcomes())
	exec := NewBatchExecutor(prim, prim)

	calls := scenarioCalls()
	outcomes := exec.TryQuery(context.Background(), calls)

	if len(outcomes) != len(calls) {
		t.Fatalf("expected %d outcomes, got %d", len(calls), len(outcomes))
	}
	if !outcomes[0].Success || !bytes.Equal(outcomes[0].Data, []byte("X-response")) {
		t.Fatalf("unexpected outcome 0: %+v", outcomes[0])
	}
	if outcomes[1].Success || !bytes.Equal(outcomes[1].Data, []byte("insufficient funds")) {
		t.Fatalf("unexpected outcome 1: %+v", outcomes[1])
	}
	if !outcomes[2].Success || !bytes.Equal(outcomes[2].Data, []byte("Z-response")) {
		t.Fatalf("unexpected outcome 2: %+v", outcomes[2])
	}
	if len(prim.invoked) != 0 {
		t.Fatalf("query used the mutating primitive: %v", prim.invoked)
	}
}

func TestEmptyBatch(t *testing.T) {
	prim := newFakePrimitive(nil)
	exec := NewBatchExecutor(prim, prim)
	ctx := context.Background()

	if err := exec.Execute(ctx, nil); err != nil {
		t.Fatalf("Execute on empty batch failed: %v", err)
	}
	exec.TryExecute(ctx, nil)

	outcomes, err := exec.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query on empty batch failed: %v", err)
	}
	if outcomes == nil || len(outcomes) != 0 {
		t.Fatalf("expected empty result, got %v", outcomes)
	}

	outcomes = exec.TryQuery(ctx, nil)
	if outcomes == nil || len(outcomes) != 0 {
		t.Fatalf("expected empty result, got %v", outcomes)
	}

	if len(prim.invoked) != 0 || len(prim.queried) != 0 {
		t.Fatal("empty batch must not dispatch")
	}
}

func TestExecute_BudgetsForwardedUnmodified(t *testing.T) {
	prim := newFakePrimitive(map[string]models.Outcome{
		"A": {Success: true},
		"B": {Success: true},
	})
	exec := NewBatchExecutor(prim, prim)

	calls := []models.Call{
		{Target: "A", Payload: []byte("x"), Budget: 25},
		{Target: "B", Payload: []byte("y"), Budget: 0},
	}
	if err := exec.Execute(context.Background(), calls); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if prim.invoked[0].Budget != 25 || prim.invoked[1].Budget != 0 {
		t.Fatalf("budgets not forwarded verbatim: %v", prim.invoked)
	}
	if !bytes.Equal(prim.invoked[0].Payload, []byte("x")) {
		t.Fatalf("payload not forwarded verbatim: %q", prim.invoked[0].Payload)
	}
}
