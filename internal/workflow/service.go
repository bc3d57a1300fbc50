package workflow

import (
	"context"
	"log/slog"

	"rdfmap/internal/logging"
	"rdfmap/internal/webapi"
)

// JobRecord captures a queued background conversion for local tracking.
type JobRecord struct {
	TaskID       string
	ProjectID    string
	OutputFormat string
	Validate     bool
}

// JobRecorder persists queued background conversions.
type JobRecorder interface {
	RecordQueued(ctx context.Context, record JobRecord) error
}

// Service orchestrates uploads, mapping generation, and conversion against
// the web API.
type Service struct {
	client   *webapi.Client
	recorder JobRecorder
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithJobRecorder attaches local persistence for queued conversions.
func WithJobRecorder(recorder JobRecorder) ServiceOption {
	return func(s *Service) {
		s.recorder = recorder
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "workflow")
		}
	}
}

// NewService creates a workflow service on top of the given API client.
func NewService(client *webapi.Client, opts ...ServiceOption) *Service {
	service := &Service{
		client: client,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}
