package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rdfmap/internal/logging"
	"rdfmap/internal/webapi"
)

// Target distinguishes the two upload slots of a project.
type Target string

const (
	TargetData     Target = "data"
	TargetOntology Target = "ontology"
)

var allowedExtensions = map[Target][]string{
	TargetData:     {".csv", ".xlsx", ".json", ".xml"},
	TargetOntology: {".ttl", ".owl", ".rdf"},
}

// ValidateUploadPath checks the file extension against the allowlist for the
// target slot. It never touches the network or the filesystem.
func ValidateUploadPath(target Target, path string) error {
	allowed, ok := allowedExtensions[target]
	if !ok {
		return &ValidationFailed{Reason: fmt.Sprintf("unknown upload target %q", target)}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range allowed {
		if ext == candidate {
			return nil
		}
	}
	return &ValidationFailed{
		Reason: fmt.Sprintf("unsupported %s file type %q (allowed: %s)", target, ext, strings.Join(allowed, ", ")),
	}
}

// Upload validates and transmits a local file into the project's target slot.
// Validation failures and unreadable files surface before any request is made.
func (s *Service) Upload(ctx context.Context, projectID string, target Target, path string) (*webapi.UploadResult, error) {
	if err := ValidateUploadPath(target, path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	filename := filepath.Base(path)
	var result *webapi.UploadResult
	switch target {
	case TargetData:
		result, err = s.client.UploadData(ctx, projectID, filename, file)
	case TargetOntology:
		result, err = s.client.UploadOntology(ctx, projectID, filename, file)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("file uploaded",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("target", string(target)),
		logging.String("file", filename),
		logging.Int64("size", result.FileSize),
	)
	return result, nil
}
