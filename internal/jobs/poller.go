package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rdfmap/internal/logging"
	"rdfmap/internal/webapi"
)

const (
	statusSuccess = "SUCCESS"
	statusFailure = "FAILURE"

	// DefaultInterval matches the cadence the web UI polls with.
	DefaultInterval = 1500 * time.Millisecond
)

// StatusClient fetches the state of a background task.
type StatusClient interface {
	JobStatus(ctx context.Context, taskID string) (*webapi.JobStatus, error)
}

// JobFailed reports a task that reached the FAILURE state. The message is the
// server's error text when it sent one.
type JobFailed struct {
	TaskID  string
	Message string
}

func (e *JobFailed) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("conversion job %s failed", e.TaskID)
}

// Poller repeatedly queries a task until it terminates.
type Poller struct {
	client   StatusClient
	interval time.Duration
	logger   *slog.Logger
	onStatus func(*webapi.JobStatus)
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the polling cadence.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithStatusCallback registers a callback invoked for every non-terminal
// observation.
func WithStatusCallback(fn func(*webapi.JobStatus)) PollerOption {
	return func(p *Poller) {
		p.onStatus = fn
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "jobs")
		}
	}
}

// NewPoller creates a poller over the given status client.
func NewPoller(client StatusClient, opts ...PollerOption) *Poller {
	poller := &Poller{
		client:   client,
		interval: DefaultInterval,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(poller)
	}
	return poller
}

// Wait polls until the task terminates. The first query happens one interval
// after the call, not immediately. A SUCCESS status yields the job result; a
// FAILURE status yields *JobFailed. A failed status query ends the wait with
// that error rather than retrying.
func (p *Poller) Wait(ctx context.Context, taskID string) (*webapi.JobResult, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			status, err := p.client.JobStatus(ctx, taskID)
			if err != nil {
				return nil, fmt.Errorf("poll job %s: %w", taskID, err)
			}
			switch status.Status {
			case statusSuccess:
				p.logger.Info("job succeeded", logging.String(logging.FieldTaskID, taskID))
				return status.Result, nil
			case statusFailure:
				message := status.Error
				if message == "" && status.Result != nil {
					message = status.Result.Error
				}
				p.logger.Warn("job failed",
					logging.String(logging.FieldTaskID, taskID),
					logging.String("reason", message),
				)
				return nil, &JobFailed{TaskID: taskID, Message: message}
			default:
				p.logger.Debug("job in progress",
					logging.String(logging.FieldTaskID, taskID),
					logging.String("status", status.Status),
				)
				if p.onStatus != nil {
					p.onStatus(status)
				}
			}
		}
	}
}
