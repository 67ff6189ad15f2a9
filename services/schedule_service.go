package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"batch-gateway-server/models"
)

type ScheduleService struct {
	db *DBService
}

func NewScheduleService(db *DBService) *ScheduleService {
	return &ScheduleService{
		db: db,
	}
}

// CreateSchedule registers a new one-time scheduled batch run
func (s *ScheduleService) CreateSchedule(ctx context.Context, req *models.CreateScheduleRequest) (*models.BatchSchedule, error) {
	if req.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("scheduled_at is required")
	}

	// Validate scheduled_at is in the future
	now := time.Now().UTC()
	if req.ScheduledAt.Before(now) {
		return nil, fmt.Errorf("scheduled_at must be in the future")
	}

	policy := req.Policy
	if policy == "" {
		policy = models.PolicyAtomic
	}
	if policy != models.PolicyAtomic && policy != models.PolicyBestEffort {
		return nil, fmt.Errorf("unknown policy: %s", policy)
	}

	calls := req.Calls
	if calls == nil {
		calls = []models.BatchCallItem{}
	}

	return s.db.CreateSchedule(ctx, &models.BatchSchedule{
		ScheduledAt: req.ScheduledAt,
		Policy:      policy,
		Calls:       calls,
		TotalBudget: req.TotalBudget,
		Executed:    false,
	})
}

// ListSchedules returns all registered schedules
func (s *ScheduleService) ListSchedules(ctx context.Context) ([]models.BatchSchedule, error) {
	return s.db.ListSchedules(ctx)
}

// DeleteSchedule removes a schedule
func (s *ScheduleService) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	return s.db.DeleteSchedule(ctx, scheduleID)
}

// ClaimDueSchedules locks due schedules and returns them for execution
func (s *ScheduleService) ClaimDueSchedules(ctx context.Context, limit int) ([]models.BatchSchedule, error) {
	if limit <= 0 {
		limit = 10
	}

	tx, err := s.db.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	rows, err := tx.QueryContext(ctx, `
		SELECT id, scheduled_at, policy, calls, total_budget, executed, executed_at, run_id, status, error_message, created_at, updated_at
		FROM batch_schedules
		WHERE executed = FALSE AND scheduled_at <= $1
		ORDER BY scheduled_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []models.BatchSchedule
	var scheduleIDs []int64
	for rows.Next() {
		var sched models.BatchSchedule
		var callsJSON []byte
		var executedAt sql.NullTime
		var runID sql.NullInt64
		var status, errorMsg sql.NullString
		var totalBudget int64
		if err := rows.Scan(&sched.ID, &sched.ScheduledAt, &sched.Policy, &callsJSON, &totalBudget, &sched.Executed, &executedAt, &runID, &status, &errorMsg, &sched.CreatedAt, &sched.UpdatedAt); err != nil {
			return nil, err
		}
		sched.TotalBudget = uint64(totalBudget)
		if callsJSON != nil {
			json.Unmarshal(callsJSON, &sched.Calls)
		}
		if executedAt.Valid {
			sched.ExecutedAt = &executedAt.Time
		}
		if runID.Valid {
			sched.RunID = &runID.Int64
		}
		if status.Valid {
			sched.Status = status.String
		}
		if errorMsg.Valid {
			sched.ErrorMessage = errorMsg.String
		}
		schedules = append(schedules, sched)
		scheduleIDs = append(scheduleIDs, sched.ID)
	}

	// Mark as executed immediately to prevent duplicate execution
	if len(scheduleIDs) > 0 {
		placeholders := ""
		for i := range scheduleIDs {
			if i > 0 {
				placeholders += ","
			}
			placeholders += fmt.Sprintf("$%d", i+1)
		}

		query := fmt.Sprintf(`
			UPDATE batch_schedules
			SET executed = TRUE, executed_at = now(), updated_at = now()
			WHERE id IN (%s)
		`, placeholders)

		args := make([]interface{}, len(scheduleIDs))
		for i, id := range scheduleIDs {
			args[i] = id
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return schedules, nil
}

// MarkExecuted marks a schedule as executed with its result
func (s *ScheduleService) MarkExecuted(ctx context.Context, scheduleID int64, runID *int64, status, errMsg string) {
	_ = s.db.MarkScheduleExecuted(ctx, scheduleID, runID, status, errMsg)
}
