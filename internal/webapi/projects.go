package webapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// ProjectCreate is the create-project request body.
type ProjectCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListProjects returns all projects known to the server.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.getCachedJSON(ctx, "projects", "/api/projects/", nil, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, create ProjectCreate) (*Project, error) {
	if strings.TrimSpace(create.Name) == "" {
		return nil, errors.New("project name must not be empty")
	}
	var project Project
	if err := c.postJSON(ctx, "/api/projects/", nil, create, &project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	c.invalidate("projects")
	return &project, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.getJSON(ctx, "/api/projects/"+url.PathEscape(projectID), nil, &project); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

// DeleteProject removes a project and its uploads.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	req, err := c.newRequest(ctx, "DELETE", "/api/projects/"+url.PathEscape(projectID), nil, nil)
	if err != nil {
		return err
	}
	if _, _, err := c.doRaw(req); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	c.invalidate("projects", "data-preview/"+projectID, "ontology-analysis/"+projectID)
	return nil
}

// UploadData transmits the tabular data file for a project as multipart form
// data. The previous data file, if any, is replaced.
func (c *Client) UploadData(ctx context.Context, projectID, filename string, file io.Reader) (*UploadResult, error) {
	var result UploadResult
	path := "/api/projects/" + url.PathEscape(projectID) + "/upload-data"
	if err := c.postMultipart(ctx, path, filename, file, &result); err != nil {
		return nil, fmt.Errorf("upload data file: %w", err)
	}
	c.invalidate("projects", "data-preview/"+projectID)
	return &result, nil
}

// UploadOntology transmits the ontology file for a project.
func (c *Client) UploadOntology(ctx context.Context, projectID, filename string, file io.Reader) (*UploadResult, error) {
	var result UploadResult
	path := "/api/projects/" + url.PathEscape(projectID) + "/upload-ontology"
	if err := c.postMultipart(ctx, path, filename, file, &result); err != nil {
		return nil, fmt.Errorf("upload ontology file: %w", err)
	}
	c.invalidate("projects", "ontology-analysis/"+projectID)
	return &result, nil
}

// DataPreview returns the analyzed columns and first rows of the data file.
func (c *Client) DataPreview(ctx context.Context, projectID string, limit int) (*DataPreview, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var preview DataPreview
	resource := "data-preview/" + projectID
	path := "/api/projects/" + url.PathEscape(projectID) + "/data-preview"
	if err := c.getCachedJSON(ctx, resource, path, query, &preview); err != nil {
		return nil, fmt.Errorf("data preview: %w", err)
	}
	return &preview, nil
}

// OntologyAnalysis returns the class/property breakdown of the ontology.
func (c *Client) OntologyAnalysis(ctx context.Context, projectID string) (*OntologyAnalysis, error) {
	var analysis OntologyAnalysis
	resource := "ontology-analysis/" + projectID
	path := "/api/projects/" + url.PathEscape(projectID) + "/ontology-analysis"
	if err := c.getCachedJSON(ctx, resource, path, nil, &analysis); err != nil {
		return nil, fmt.Errorf("ontology analysis: %w", err)
	}
	return &analysis, nil
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.getJSON(ctx, "/api/health", nil, &health); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &health, nil
}
