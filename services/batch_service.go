package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"batch-gateway-server/models"
)

// BatchService runs batches end to end: it resolves payload references,
// records a run row, drives the batch executor in the requested mode and
// policy, and persists the result. Abort under atomic policy is not a service
// error; it is recorded on the run (status, aborted index, error payload
// verbatim). Service errors cover only the host plumbing around the executor.
type BatchService struct {
	db       *DBService
	payloads PayloadStore
	invoker  Invoker
	querier  QueryInvoker
}

func NewBatchService(db *DBService, payloads PayloadStore, dispatcher *Dispatcher) *BatchService {
	return &BatchService{
		db:       db,
		payloads: payloads,
		invoker:  dispatcher,
		querier:  dispatcher,
	}
}

// Execute runs a mutating batch under atomic policy: the first failing call
// aborts the run and later calls are never dispatched. Effects of calls
// before the abort are not undone.
func (s *BatchService) Execute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run(ctx, models.ModeExecute, models.PolicyAtomic, req)
}

// TryExecute runs a mutating batch under best-effort policy: every call is
// dispatched exactly once regardless of individual failures.
func (s *BatchService) TryExecute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run(ctx, models.ModeExecute, models.PolicyBestEffort, req)
}

// Query runs a read-only batch under atomic policy
func (s *BatchService) Query(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run(ctx, models.ModeQuery, models.PolicyAtomic, req)
}

// TryQuery runs a read-only batch under best-effort policy; the run's
// outcomes are index-aligned with the submitted calls.
func (s *BatchService) TryQuery(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run(ctx, models.ModeQuery, models.PolicyBestEffort, req)
}

func (s *BatchService) run(ctx context.Context, mode, policy string, req *models.BatchRequest) (*models.BatchRun, error) {
	calls, err := s.resolveCalls(ctx, req.Calls)
	if err != nil {
		return nil, err
	}

	run, err := s.db.CreateBatchRun(ctx, &models.BatchRun{
		Mode:        mode,
		Policy:      policy,
		CallCount:   len(calls),
		Status:      models.StatusPending,
		TotalBudget: req.TotalBudget,
	})
	if err != nil {
		return nil, err
	}

	// The whole-batch budget cap is host-side enforcement; the executor
	// itself only forwards per-call budgets.
	invoker := s.invoker
	if mode == models.ModeExecute && req.TotalBudget > 0 {
		invoker = NewBudgetCap(invoker, req.TotalBudget)
	}
	exec := NewBatchExecutor(invoker, s.querier)

	start := time.Now()
	var outcomes []models.Outcome
	var runErr error

	switch {
	case mode == models.ModeExecute && policy == models.PolicyAtomic:
		runErr = exec.Execute(ctx, calls)
	case mode == models.ModeExecute && policy == models.PolicyBestEffort:
		exec.TryExecute(ctx, calls)
	case mode == models.ModeQuery && policy == models.PolicyAtomic:
		outcomes, runErr = exec.Query(ctx, calls)
	case mode == models.ModeQuery && policy == models.PolicyBestEffort:
		outcomes = exec.TryQuery(ctx, calls)
	}

	run.DurationMs = int(time.Since(start).Milliseconds())
	run.Status = models.StatusSuccess

	var abort *AbortError
	if runErr != nil && errors.As(runErr, &abort) {
		run.Status = models.StatusFail
		idx := abort.Index
		run.AbortedIndex = &idx
		run.ErrorPayload = abort.Data
	}

	if err := s.db.FinishBatchRun(ctx, run.ID, run.Status, run.AbortedIndex, run.ErrorPayload, run.DurationMs); err != nil {
		log.Printf("batch: failed to finalize run %d: %v", run.ID, err)
	}

	if mode == models.ModeQuery && outcomes != nil {
		run.Outcomes = outcomes
		if err := s.db.InsertRunOutcomes(ctx, run.ID, calls, outcomes); err != nil {
			log.Printf("batch: failed to record outcomes for run %d: %v", run.ID, err)
		}
	}

	return run, nil
}

// resolveCalls validates the submitted items and materializes payload
// references into the opaque payload bytes the executor forwards.
func (s *BatchService) resolveCalls(ctx context.Context, items []models.BatchCallItem) ([]models.Call, error) {
	calls := make([]models.Call, 0, len(items))
	for i, item := range items {
		if item.Target == "" {
			return nil, fmt.Errorf("call %d: target is required", i)
		}
		if item.Payload != nil && item.PayloadKey != "" {
			return nil, fmt.Errorf("call %d: payload and payload_key are mutually exclusive", i)
		}

		payload := item.Payload
		if item.PayloadKey != "" {
			stored, err := s.payloads.GetPayload(ctx, item.PayloadKey)
			if err != nil {
				return nil, fmt.Errorf("call %d: resolve payload %s: %w", i, item.PayloadKey, err)
			}
			payload = stored
		}

		calls = append(calls, models.Call{
			Target:  item.Target,
			Payload: payload,
			Budget:  item.Budget,
		})
	}
	return calls, nil
}

// GetRun retrieves a recorded batch run by ID
func (s *BatchService) GetRun(ctx context.Context, id int64) (*models.BatchRun, error) {
	run, err := s.db.GetBatchRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("batch run not found: %d", id)
	}
	return run, nil
}

// ListRuns returns recent batch runs
func (s *BatchService) ListRuns(ctx context.Context, limit int) ([]models.BatchRunListItem, error) {
	return s.db.ListBatchRuns(ctx, limit)
}
