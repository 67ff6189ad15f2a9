package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"batch-gateway-server/models"

	_ "github.com/lib/pq"
)

type DBService struct {
	db *sql.DB
}

func NewDBService(host string, port int, user, password, dbname string) (*DBService, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DBService{db: db}, nil
}

func (s *DBService) Close() error {
	return s.db.Close()
}

// InitSchema creates tables if they don't exist
func (s *DBService) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS endpoints (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		kind VARCHAR(20) NOT NULL,
		url TEXT,
		query_url TEXT,
		queue VARCHAR(100),
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS batch_runs (
		id BIGSERIAL PRIMARY KEY,
		mode VARCHAR(20) NOT NULL,
		policy VARCHAR(20) NOT NULL,
		call_count INTEGER NOT NULL,
		status VARCHAR(20) NOT NULL,
		aborted_index INTEGER,
		error_payload BYTEA,
		total_budget BIGINT NOT NULL DEFAULT 0,
		duration_ms INTEGER,
		started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS batch_run_calls (
		id BIGSERIAL PRIMARY KEY,
		run_id BIGINT NOT NULL REFERENCES batch_runs(id) ON DELETE CASCADE,
		call_index INTEGER NOT NULL,
		target VARCHAR(100) NOT NULL,
		success BOOLEAN NOT NULL,
		data BYTEA
	);

	CREATE TABLE IF NOT EXISTS batch_schedules (
		id BIGSERIAL PRIMARY KEY,
		scheduled_at TIMESTAMPTZ NOT NULL,
		policy VARCHAR(20) NOT NULL,
		calls JSONB NOT NULL,
		total_budget BIGINT NOT NULL DEFAULT 0,
		executed BOOLEAN NOT NULL DEFAULT FALSE,
		executed_at TIMESTAMPTZ,
		run_id BIGINT,
		status VARCHAR(20),
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_batch_run_calls_run_id ON batch_run_calls(run_id);
	CREATE INDEX IF NOT EXISTS idx_batch_runs_started_at ON batch_runs(started_at DESC);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// CreateEndpoint inserts a new endpoint
func (s *DBService) CreateEndpoint(ctx context.Context, ep *models.Endpoint) (*models.Endpoint, error) {
	var id int64
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO endpoints (name, kind, url, query_url, queue, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, ep.Name, ep.Kind, ep.URL, ep.QueryURL, ep.Queue, ep.Description).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	ep.ID = id
	ep.CreatedAt = createdAt
	ep.UpdatedAt = updatedAt

	return ep, nil
}

// GetEndpoint retrieves an endpoint by ID
func (s *DBService) GetEndpoint(ctx context.Context, id int64) (*models.Endpoint, error) {
	return s.getEndpoint(ctx, `
		SELECT id, name, kind, url, query_url, queue, description, created_at, updated_at
		FROM endpoints WHERE id = $1
	`, id)
}

// GetEndpointByName retrieves an endpoint by its target name
func (s *DBService) GetEndpointByName(ctx context.Context, name string) (*models.Endpoint, error) {
	return s.getEndpoint(ctx, `
		SELECT id, name, kind, url, query_url, queue, description, created_at, updated_at
		FROM endpoints WHERE name = $1
	`, name)
}

func (s *DBService) getEndpoint(ctx context.Context, query string, arg interface{}) (*models.Endpoint, error) {
	ep := &models.Endpoint{}
	var url, queryURL, queue sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&ep.ID, &ep.Name, &ep.Kind, &url, &queryURL, &queue, &ep.Description, &ep.CreatedAt, &ep.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if url.Valid {
		ep.URL = url.String
	}
	if queryURL.Valid {
		ep.QueryURL = queryURL.String
	}
	if queue.Valid {
		ep.Queue = queue.String
	}

	return ep, nil
}

// ListEndpoints returns all endpoints
func (s *DBService) ListEndpoints(ctx context.Context) ([]models.EndpointListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, created_at
		FROM endpoints ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endpoints []models.EndpointListItem
	for rows.Next() {
		var ep models.EndpointListItem
		err := rows.Scan(&ep.ID, &ep.Name, &ep.Kind, &ep.CreatedAt)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}

	return endpoints, nil
}

// DeleteEndpoint removes an endpoint record
func (s *DBService) DeleteEndpoint(ctx context.Context, id int64) (*models.Endpoint, error) {
	ep, err := s.GetEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if ep == nil {
		return nil, nil
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM endpoints WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	return ep, nil
}

// CreateBatchRun creates a new batch run record in pending state
func (s *DBService) CreateBatchRun(ctx context.Context, run *models.BatchRun) (*models.BatchRun, error) {
	var id int64
	var startedAt, createdAt time.Time
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO batch_runs (mode, policy, call_count, status, total_budget)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, started_at, created_at
	`, run.Mode, run.Policy, run.CallCount, run.Status, int64(run.TotalBudget)).Scan(&id, &startedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	run.ID = id
	run.StartedAt = startedAt
	run.CreatedAt = createdAt

	return run, nil
}

// FinishBatchRun updates a batch run with its final result
func (s *DBService) FinishBatchRun(ctx context.Context, id int64, status string, abortedIndex *int, errorPayload []byte, durationMs int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE batch_runs
		SET status = $2, aborted_index = $3, error_payload = $4, duration_ms = $5
		WHERE id = $1
	`, id, status, abortedIndex, errorPayload, durationMs)

	return err
}

// InsertRunOutcomes stores the index-aligned per-call outcomes of a query run
func (s *DBService) InsertRunOutcomes(ctx context.Context, runID int64, calls []models.Call, outcomes []models.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, out := range outcomes {
		target := ""
		if i < len(calls) {
			target = calls[i].Target
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO batch_run_calls (run_id, call_index, target, success, data)
			VALUES ($1, $2, $3, $4, $5)
		`, runID, i, target, out.Success, out.Data)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBatchRun retrieves a batch run by ID, including recorded outcomes
func (s *DBService) GetBatchRun(ctx context.Context, id int64) (*models.BatchRun, error) {
	run := &models.BatchRun{}
	var abortedIndex sql.NullInt32
	var errorPayload []byte
	var totalBudget int64
	var durationMs sql.NullInt32

	err := s.db.QueryRowContext(ctx, `
		SELECT id, mode, policy, call_count, status, aborted_index, error_payload, total_budget, duration_ms, started_at, created_at
		FROM batch_runs WHERE id = $1
	`, id).Scan(&run.ID, &run.Mode, &run.Policy, &run.CallCount, &run.Status, &abortedIndex, &errorPayload, &totalBudget, &durationMs, &run.StartedAt, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if abortedIndex.Valid {
		idx := int(abortedIndex.Int32)
		run.AbortedIndex = &idx
	}
	run.ErrorPayload = errorPayload
	run.TotalBudget = uint64(totalBudget)
	if durationMs.Valid {
		run.DurationMs = int(durationMs.Int32)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT success, data
		FROM batch_run_calls WHERE run_id = $1
		ORDER BY call_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var out models.Outcome
		if err := rows.Scan(&out.Success, &out.Data); err != nil {
			return nil, err
		}
		run.Outcomes = append(run.Outcomes, out)
	}

	return run, nil
}

// ListBatchRuns returns recent batch runs
func (s *DBService) ListBatchRuns(ctx context.Context, limit int) ([]models.BatchRunListItem, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, policy, call_count, status, duration_ms, started_at
		FROM batch_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.BatchRunListItem
	for rows.Next() {
		var run models.BatchRunListItem
		var durationMs sql.NullInt32

		err := rows.Scan(&run.ID, &run.Mode, &run.Policy, &run.CallCount, &run.Status, &durationMs, &run.StartedAt)
		if err != nil {
			return nil, err
		}
		if durationMs.Valid {
			run.DurationMs = int(durationMs.Int32)
		}

		runs = append(runs, run)
	}

	return runs, nil
}
