package storage

import "time"

// Setup run statuses.
const (
	RunStatusRunning             = "running"
	RunStatusCompleted           = "completed"
	RunStatusCompletedWithErrors = "completed_with_errors"
	RunStatusFailed              = "failed"
)

// SetupRun is one execution of index provisioning plus ingestion.
type SetupRun struct {
	ID            string     `json:"id"` // UUID
	IndexName     string     `json:"index_name"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	IndexCreated  bool       `json:"index_created"`
	Documents     int        `json:"documents"`
	Chunks        int        `json:"chunks"`
	Upserted      int        `json:"upserted"`
	FailedBatches int        `json:"failed_batches"`
	Error         string     `json:"error,omitempty"`
}

// BatchFailure is an upsert batch the vector store rejected during a run.
type BatchFailure struct {
	RunID      string `json:"run_id"`
	Source     string `json:"source"`
	BatchIndex int    `json:"batch_index"`
	Size       int    `json:"size"`
	FirstID    string `json:"first_id"`
	LastID     string `json:"last_id"`
	Error      string `json:"error"`
}
