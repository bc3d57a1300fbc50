package jobs

import (
	"context"
	"errors"
	"sync"

	"rdfmap/internal/webapi"
)

// State is the tracker's view of the watched job.
type State int

const (
	// Idle means no job is being watched.
	Idle State = iota
	// Polling means a watch is running and the job has not terminated.
	Polling
	// Completed means the watched job reached SUCCESS.
	Completed
	// Failed means the watched job reached FAILURE or a status query failed.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the tracker state.
type Snapshot struct {
	TaskID string
	State  State
	Result *webapi.JobResult
	Err    error
}

// Tracker watches at most one background job at a time. Starting a new watch
// cancels the previous one; the superseded watch never writes its outcome
// back.
type Tracker struct {
	poller *Poller

	mu     sync.Mutex
	taskID string
	state  State
	result *webapi.JobResult
	err    error
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTracker creates an idle tracker over the given poller.
func NewTracker(poller *Poller) *Tracker {
	return &Tracker{poller: poller, state: Idle}
}

// Watch starts polling taskID, superseding any watch already running. The
// returned channel closes when this watch ends for any reason.
func (t *Tracker) Watch(ctx context.Context, taskID string) <-chan struct{} {
	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.done = done
	t.taskID = taskID
	t.state = Polling
	t.result = nil
	t.err = nil
	t.mu.Unlock()

	go func() {
		defer close(done)
		result, err := t.poller.Wait(watchCtx, taskID)

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.done != done {
			// Superseded while polling; a newer watch owns the state.
			return
		}
		switch {
		case err == nil:
			t.state = Completed
			t.result = result
		case errors.Is(err, context.Canceled):
			t.state = Idle
		default:
			t.state = Failed
			t.err = err
		}
	}()

	return done
}

// Stop cancels the current watch, if any, and returns its done channel so
// callers can wait for the poll loop to exit.
func (t *Tracker) Stop() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.done != nil {
		return t.done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// Snapshot returns the current tracker state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{TaskID: t.taskID, State: t.state, Result: t.result, Err: t.err}
}
