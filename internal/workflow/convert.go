package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rdfmap/internal/config"
	"rdfmap/internal/logging"
	"rdfmap/internal/webapi"
)

// ConvertRequest describes a conversion run.
type ConvertRequest struct {
	ProjectID    string
	OutputFormat string
	Validate     bool
}

func (r ConvertRequest) validate() error {
	if strings.TrimSpace(r.ProjectID) == "" {
		return &ValidationFailed{Reason: "project id required"}
	}
	if r.OutputFormat != "" && !slices.Contains(config.OutputFormats, r.OutputFormat) {
		return &ValidationFailed{
			Reason: fmt.Sprintf("unsupported output format %q (allowed: %s)", r.OutputFormat, strings.Join(config.OutputFormats, ", ")),
		}
	}
	return nil
}

func (r ConvertRequest) options() webapi.ConvertOptions {
	return webapi.ConvertOptions{OutputFormat: r.OutputFormat, Validate: r.Validate}
}

// ConvertSync runs a conversion in the request and waits for the result.
func (s *Service) ConvertSync(ctx context.Context, req ConvertRequest) (*webapi.ConversionResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	result, err := s.client.ConvertSync(ctx, req.ProjectID, req.options())
	if err != nil {
		return nil, err
	}
	s.logger.Info("conversion finished",
		logging.String(logging.FieldProjectID, req.ProjectID),
		logging.String("format", result.Format),
		logging.Int64("triples", result.TripleCount),
	)
	return result, nil
}

// ConvertBackground queues a background conversion. When a job recorder is
// attached the queued task is persisted for later listing.
func (s *Service) ConvertBackground(ctx context.Context, req ConvertRequest) (*webapi.QueuedConversion, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	queued, err := s.client.ConvertAsync(ctx, req.ProjectID, req.options())
	if err != nil {
		return nil, err
	}
	if s.recorder != nil && queued.TaskID != "" {
		record := JobRecord{
			TaskID:       queued.TaskID,
			ProjectID:    req.ProjectID,
			OutputFormat: req.OutputFormat,
			Validate:     req.Validate,
		}
		if err := s.recorder.RecordQueued(ctx, record); err != nil {
			s.logger.Warn("record queued conversion",
				logging.String(logging.FieldTaskID, queued.TaskID),
				logging.Error(err),
			)
		}
	}
	s.logger.Info("conversion queued",
		logging.String(logging.FieldProjectID, req.ProjectID),
		logging.String(logging.FieldTaskID, queued.TaskID),
	)
	return queued, nil
}

// Download fetches the converted output into destDir and returns the written
// path. The filename follows the server's content disposition when present.
func (s *Service) Download(ctx context.Context, projectID, destDir string) (string, error) {
	body, name, err := s.client.Download(ctx, projectID)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if destDir != "" {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return "", fmt.Errorf("create download directory: %w", err)
		}
	}
	destPath := filepath.Join(destDir, name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	written, err := io.Copy(out, body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	s.logger.Info("output downloaded",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("path", destPath),
		logging.Int64("bytes", written),
	)
	return destPath, nil
}
