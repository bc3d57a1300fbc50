package webapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GenerateOptions tunes mapping generation.
type GenerateOptions struct {
	UseSemantic   bool
	MinConfidence float64
	BaseIRI       string
	TargetClass   string
}

// GenerateMapping asks the server to align data columns against the ontology
// and produce a mapping document.
func (c *Client) GenerateMapping(ctx context.Context, projectID string, opts GenerateOptions) (*GenerateResult, error) {
	query := url.Values{}
	query.Set("use_semantic", strconv.FormatBool(opts.UseSemantic))
	if opts.MinConfidence > 0 {
		query.Set("min_confidence", strconv.FormatFloat(opts.MinConfidence, 'f', -1, 64))
	}
	if opts.BaseIRI != "" {
		query.Set("base_iri", opts.BaseIRI)
	}
	if opts.TargetClass != "" {
		query.Set("target_class", opts.TargetClass)
	}

	var result GenerateResult
	path := "/api/mappings/" + url.PathEscape(projectID) + "/generate"
	if err := c.postJSON(ctx, path, query, nil, &result); err != nil {
		return nil, fmt.Errorf("generate mapping: %w", err)
	}
	c.invalidate("projects", "mapping/"+projectID)
	return &result, nil
}

// RawMapping fetches the mapping document as YAML text.
func (c *Client) RawMapping(ctx context.Context, projectID string) (string, error) {
	query := url.Values{}
	query.Set("raw", "true")
	text, err := c.getText(ctx, "/api/mappings/"+url.PathEscape(projectID), query)
	if err != nil {
		return "", fmt.Errorf("fetch mapping document: %w", err)
	}
	return text, nil
}
