package models

// DispatchJob is the wire format pushed onto a queue endpoint's redis list
// for workers to consume.
type DispatchJob struct {
	JobID   string `json:"jobId"`
	Target  string `json:"target"`
	Payload []byte `json:"payload"`
	Budget  uint64 `json:"budget,omitempty"`
}

// Worker result status values
const (
	DispatchStatusSuccess = "SUCCESS"
	DispatchStatusError   = "ERROR"
)

// DispatchResult is written by a worker under the job's result key when the
// dispatched call completes.
type DispatchResult struct {
	JobID        string `json:"jobId"`
	Status       string `json:"status"`
	Output       []byte `json:"output,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	DurationMs   int64  `json:"durationMs"`
}
