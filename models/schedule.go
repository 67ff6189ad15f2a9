package models

import "time"

// BatchSchedule represents a one-time scheduled mutating batch run
type BatchSchedule struct {
	ID           int64           `json:"id"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	Policy       string          `json:"policy"`
	Calls        []BatchCallItem `json:"calls"`
	TotalBudget  uint64          `json:"total_budget,omitempty"`
	Executed     bool            `json:"executed"`
	ExecutedAt   *time.Time      `json:"executed_at,omitempty"`
	RunID        *int64          `json:"run_id,omitempty"`
	Status       string          `json:"status,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateScheduleRequest is used to register a new scheduled batch
type CreateScheduleRequest struct {
	ScheduledAt time.Time       `json:"scheduled_at"`
	Policy      string          `json:"policy"`
	Calls       []BatchCallItem `json:"calls"`
	TotalBudget uint64          `json:"total_budget,omitempty"`
}
