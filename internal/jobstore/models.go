package jobstore

import "time"

// Status is the lifecycle state of a tracked job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Job is one tracked background conversion.
type Job struct {
	ID           int64
	TaskID       string
	ProjectID    string
	OutputFormat string
	Validate     bool
	Status       Status
	TripleCount  int64
	OutputFile   string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
