package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"batch-gateway-server/models"
)

// CreateSchedule inserts a new scheduled batch
func (s *DBService) CreateSchedule(ctx context.Context, sched *models.BatchSchedule) (*models.BatchSchedule, error) {
	callsJSON, _ := json.Marshal(sched.Calls)
	var created models.BatchSchedule
	var executedAt sql.NullTime
	var runID sql.NullInt64
	var status, errorMsg sql.NullString
	var totalBudget int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO batch_schedules (scheduled_at, policy, calls, total_budget, executed)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, scheduled_at, policy, calls, total_budget, executed, executed_at, run_id, status, error_message, created_at, updated_at
	`, sched.ScheduledAt, sched.Policy, callsJSON, int64(sched.TotalBudget)).
		Scan(&created.ID, &created.ScheduledAt, &created.Policy, &callsJSON, &totalBudget, &created.Executed, &executedAt, &runID, &status, &errorMsg, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}

	created.TotalBudget = uint64(totalBudget)
	if executedAt.Valid {
		created.ExecutedAt = &executedAt.Time
	}
	if runID.Valid {
		created.RunID = &runID.Int64
	}
	if status.Valid {
		created.Status = status.String
	}
	if errorMsg.Valid {
		created.ErrorMessage = errorMsg.String
	}
	if callsJSON != nil {
		json.Unmarshal(callsJSON, &created.Calls)
	}

	return &created, nil
}

// ListSchedules returns all registered schedules
func (s *DBService) ListSchedules(ctx context.Context) ([]models.BatchSchedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scheduled_at, policy, calls, total_budget, executed, executed_at, run_id, status, error_message, created_at, updated_at
		FROM batch_schedules
		ORDER BY scheduled_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []models.BatchSchedule{}
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
		if callsJSON != nil {
			json.Unmarshal(callsJSON, &sched.Calls)
		}
		schedules = append(schedules, sched)
	}

	return schedules, nil
}

// DeleteSchedule removes a schedule
func (s *DBService) DeleteSchedule(ctx context.Context, scheduleID int64) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM batch_schedules WHERE id = $1
	`, scheduleID)
	return err
}

// MarkScheduleExecuted marks a schedule as executed with its result
func (s *DBService) MarkScheduleExecuted(ctx context.Context, scheduleID int64, runID *int64, status, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE batch_schedules
		SET executed = TRUE, executed_at = now(), run_id = $2, status = $3, error_message = $4, updated_at = now()
		WHERE id = $1
	`, scheduleID, runID, status, errMsg)
	return err
}
