package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"batch-gateway-server/models"
)

// stubRunner returns scripted runs without touching any backend.
type stubRunner struct {
	run  *models.BatchRun
	err  error
	runs []models.BatchRunListItem
}

func (s *stubRunner) Execute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run, s.err
}

func (s *stubRunner) TryExecute(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run, s.err
}

func (s *stubRunner) Query(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run, s.err
}

func (s *stubRunner) TryQuery(ctx context.Context, req *models.BatchRequest) (*models.BatchRun, error) {
	return s.run, s.err
}

func (s *stubRunner) GetRun(ctx context.Context, id int64) (*models.BatchRun, error) {
	if s.run == nil {
		return nil, fmt.Errorf("batch run %d not found", id)
	}
	return s.run, s.err
}

func (s *stubRunner) ListRuns(ctx context.Context, limit int) ([]models.BatchRunListItem, error) {
	return s.runs, s.err
}

func newTestApp(runner *stubRunner) *fiber.App {
	h := NewBatchHandler(runner)
	app := fiber.New()
	api := app.Group("/api")
	api.Post("/batches/execute", h.Execute)
	api.Post("/batches/try-execute", h.TryExecute)
	api.Post("/batches/query", h.Query)
	api.Post("/batches/try-query", h.TryQuery)
	api.Get("/batches", h.ListRuns)
	api.Get("/batches/:id", h.GetRun)
	return app
}

func postBatch(t *testing.T, app *fiber.App, path string, req *models.BatchRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(httpReq)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestExecuteEndpoint_Success(t *testing.T) {
	runner := &stubRunner{run: &models.BatchRun{
		ID:        1,
		Mode:      models.ModeExecute,
		Policy:    models.PolicyAtomic,
		CallCount: 2,
		Status:    models.StatusSuccess,
	}}
	app := newTestApp(runner)

	resp := postBatch(t, app, "/api/batches/execute", &models.BatchRequest{
		Calls: []models.BatchCallItem{
			{Target: "ledger", Payload: []byte("a")},
			{Target: "ledger", Payload: []byte("b")},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var run models.BatchRun
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if run.ID != 1 || run.Status != models.StatusSuccess {
		t.Errorf("unexpected run in response: %+v", run)
	}
}

func TestExecuteEndpoint_AbortReturnsConflictWithRun(t *testing.T) {
	abortedIndex := 1
	runner := &stubRunner{run: &models.BatchRun{
		ID:           7,
		Mode:         models.ModeExecute,
		Policy:       models.PolicyAtomic,
		CallCount:    3,
		Status:       models.StatusFail,
		AbortedIndex: &abortedIndex,
		ErrorPayload: []byte("insufficient funds"),
	}}
	app := newTestApp(runner)

	resp := postBatch(t, app, "/api/batches/execute", &models.BatchRequest{
		Calls: []models.BatchCallItem{{Target: "ledger", Payload: []byte("a")}},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	var run models.BatchRun
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if run.AbortedIndex == nil || *run.AbortedIndex != 1 {
		t.Errorf("expected aborted_index 1, got %v", run.AbortedIndex)
	}
	if string(run.ErrorPayload) != "insufficient funds" {
		t.Errorf("expected failing call diagnostic carried verbatim, got %q", run.ErrorPayload)
	}
}

func TestTryQueryEndpoint_Success(t *testing.T) {
	runner := &stubRunner{run: &models.BatchRun{
		ID:        3,
		Mode:      models.ModeQuery,
		Policy:    models.PolicyBestEffort,
		CallCount: 2,
		Status:    models.StatusSuccess,
		Outcomes: []models.Outcome{
			{Success: true, Data: []byte("one")},
			{Success: false, Data: []byte("no such record")},
		},
	}}
	app := newTestApp(runner)

	resp := postBatch(t, app, "/api/batches/try-query", &models.BatchRequest{
		Calls: []models.BatchCallItem{
			{Target: "ledger", Payload: []byte("q1")},
			{Target: "ledger", Payload: []byte("q2")},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var run models.BatchRun
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(run.Outcomes) != 2 {
		t.Fatalf("expected 2 index-aligned outcomes, got %d", len(run.Outcomes))
	}
	if run.Outcomes[1].Success {
		t.Error("expected second outcome to be a failure entry, not an error")
	}
}

func TestBatchEndpoint_InvalidBody(t *testing.T) {
	app := newTestApp(&stubRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/batches/execute", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBatchEndpoint_ServiceErrorIsBadRequest(t *testing.T) {
	runner := &stubRunner{err: fmt.Errorf("call 0: target is required")}
	app := newTestApp(runner)

	resp := postBatch(t, app, "/api/batches/try-execute", &models.BatchRequest{
		Calls: []models.BatchCallItem{{Payload: []byte("a")}},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	app := newTestApp(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/batches/99", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListRuns_EmptyIsJSONArray(t *testing.T) {
	app := newTestApp(&stubRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/batches", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(bytes.TrimSpace(body)) != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
