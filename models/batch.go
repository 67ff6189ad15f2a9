package models

import (
	"time"
)

// Call is a single invocation request within a batch: an opaque payload
// addressed to a registered endpoint, optionally carrying a resource budget
// earmarked for that call. Budget zero means no resource transfer.
type Call struct {
	Target  string `json:"target"`
	Payload []byte `json:"payload,omitempty"`
	Budget  uint64 `json:"budget,omitempty"`
}

// Outcome is the (success, data) pair produced by dispatching one call.
// On success Data holds the target's raw response bytes; on failure it holds
// the diagnostic payload. Both are opaque byte strings, distinguishable only
// by Success.
type Outcome struct {
	Success bool   `json:"success"`
	Data    []byte `json:"data,omitempty"`
}

// Batch run modes (batch_runs.mode)
const (
	ModeExecute = "execute"
	ModeQuery   = "query"
)

// Failure policies (batch_runs.policy)
const (
	PolicyAtomic     = "atomic"
	PolicyBestEffort = "best_effort"
)

// Run status constants
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusPending = "pending"
)

// BatchCallItem is one entry of a batch request body. Payload carries the
// bytes inline (base64 in JSON); PayloadKey references a previously uploaded
// payload blob instead. Exactly one of the two should be set.
type BatchCallItem struct {
	Target     string `json:"target"`
	Payload    []byte `json:"payload,omitempty"`
	PayloadKey string `json:"payload_key,omitempty"`
	Budget     uint64 `json:"budget,omitempty"`
}

// BatchRequest is the request body shared by all four batch routes.
// TotalBudget only applies to mutating runs that carry per-call budgets.
type BatchRequest struct {
	Calls       []BatchCallItem `json:"calls"`
	TotalBudget uint64          `json:"total_budget,omitempty"`
}

// BatchRun represents one recorded batch execution (batch_runs table).
// Outcomes is populated for query-mode runs only and is index-aligned with
// the submitted calls.
type BatchRun struct {
	ID           int64     `json:"id"`
	Mode         string    `json:"mode"`
	Policy       string    `json:"policy"`
	CallCount    int       `json:"call_count"`
	Status       string    `json:"status"`
	AbortedIndex *int      `json:"aborted_index,omitempty"`
	ErrorPayload []byte    `json:"error_payload,omitempty"`
	TotalBudget  uint64    `json:"total_budget,omitempty"`
	DurationMs   int       `json:"duration_ms"`
	StartedAt    time.Time `json:"started_at"`
	CreatedAt    time.Time `json:"created_at"`
	Outcomes     []Outcome `json:"outcomes,omitempty"`
}

// BatchRunListItem represents a batch run in list view (without outcomes)
type BatchRunListItem struct {
	ID         int64     `json:"id"`
	Mode       string    `json:"mode"`
	Policy     string    `json:"policy"`
	CallCount  int       `json:"call_count"`
	Status     string    `json:"status"`
	DurationMs int       `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}
