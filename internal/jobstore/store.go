package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"rdfmap/internal/config"
	"rdfmap/internal/workflow"
)

// Store manages job persistence backed by SQLite. A file lock serializes
// access across concurrent CLI invocations.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond

	lockRetryDelay   = 50 * time.Millisecond
	lockWaitDeadline = 5 * time.Second
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

// Open initializes or connects to the job database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.JobStorePath())
}

// OpenPath initializes or connects to the job database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	fileLock := flock.New(dbPath + ".lock")
	lockCtx, cancel := context.WithTimeout(context.Background(), lockWaitDeadline)
	defer cancel()
	ok, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire job store lock: %w", err)
	}
	if !ok {
		return nil, errors.New("job store is locked by another rdfmap process")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = fileLock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = fileLock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: fileLock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = fileLock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database and releases the file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

const jobColumns = `id, task_id, project_id, output_format, validate_output,
	status, triple_count, output_file, error_message, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*Job, error) {
	var (
		job       Job
		validate  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&job.ID, &job.TaskID, &job.ProjectID, &job.OutputFormat, &validate,
		&job.Status, &job.TripleCount, &job.OutputFile, &job.ErrorMessage,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Validate = validate != 0
	if job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if job.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &job, nil
}

// RecordQueued inserts a freshly queued conversion. It satisfies the
// workflow job recorder interface.
func (s *Store) RecordQueued(ctx context.Context, record workflow.JobRecord) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	validate := 0
	if record.Validate {
		validate = 1
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO conversion_jobs (
			task_id, project_id, output_format, validate_output,
			status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.TaskID, record.ProjectID, record.OutputFormat, validate,
		StatusQueued, timestamp, timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// MarkRunning transitions a job to running.
func (s *Store) MarkRunning(ctx context.Context, taskID string) error {
	return s.setStatus(ctx, taskID,
		`UPDATE conversion_jobs SET status = ?, updated_at = ? WHERE task_id = ?`,
		StatusRunning)
}

// MarkSucceeded records a successful completion.
func (s *Store) MarkSucceeded(ctx context.Context, taskID, outputFile string, tripleCount int64) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(ctx,
		`UPDATE conversion_jobs
		 SET status = ?, output_file = ?, triple_count = ?, updated_at = ?
		 WHERE task_id = ?`,
		StatusSucceeded, outputFile, tripleCount, timestamp, taskID,
	)
	if err != nil {
		return fmt.Errorf("mark job succeeded: %w", err)
	}
	return nil
}

// MarkFailed records a failure with its message.
func (s *Store) MarkFailed(ctx context.Context, taskID, message string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(ctx,
		`UPDATE conversion_jobs
		 SET status = ?, error_message = ?, updated_at = ?
		 WHERE task_id = ?`,
		StatusFailed, message, timestamp, taskID,
	)
	if err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return nil
}

func (s *Store) setStatus(ctx context.Context, taskID, query string, status Status) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := s.execWithRetry(ctx, query, status, timestamp, taskID); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

// GetByTaskID fetches a job by task identifier; nil when absent.
func (s *Store) GetByTaskID(ctx context.Context, taskID string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM conversion_jobs WHERE task_id = ?`, taskID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Latest returns the most recently created job; nil when the store is empty.
func (s *Store) Latest(ctx context.Context) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM conversion_jobs ORDER BY id DESC LIMIT 1`)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest job: %w", err)
	}
	return job, nil
}

// List returns jobs newest first, up to limit (all when limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM conversion_jobs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var listed []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		listed = append(listed, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return listed, nil
}
