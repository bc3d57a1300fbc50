package webapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ConvertOptions tunes a conversion run.
type ConvertOptions struct {
	OutputFormat string
	Validate     bool
}

func conversionQuery(opts ConvertOptions, background bool) url.Values {
	query := url.Values{}
	if opts.OutputFormat != "" {
		query.Set("output_format", opts.OutputFormat)
	}
	query.Set("validate", strconv.FormatBool(opts.Validate))
	query.Set("use_background", strconv.FormatBool(background))
	return query
}

// ConvertSync runs a conversion in the request and returns the finished result.
func (c *Client) ConvertSync(ctx context.Context, projectID string, opts ConvertOptions) (*ConversionResult, error) {
	var result ConversionResult
	path := "/api/conversion/" + url.PathEscape(projectID)
	if err := c.postJSON(ctx, path, conversionQuery(opts, false), nil, &result); err != nil {
		return nil, fmt.Errorf("convert project: %w", err)
	}
	c.invalidate("projects")
	return &result, nil
}

// ConvertAsync queues a background conversion and returns its task handle.
func (c *Client) ConvertAsync(ctx context.Context, projectID string, opts ConvertOptions) (*QueuedConversion, error) {
	var queued QueuedConversion
	path := "/api/conversion/" + url.PathEscape(projectID)
	if err := c.postJSON(ctx, path, conversionQuery(opts, true), nil, &queued); err != nil {
		return nil, fmt.Errorf("queue conversion: %w", err)
	}
	c.invalidate("projects")
	return &queued, nil
}

// JobStatus fetches the state of a background conversion task.
func (c *Client) JobStatus(ctx context.Context, taskID string) (*JobStatus, error) {
	var status JobStatus
	if err := c.getJSON(ctx, "/api/conversion/job/"+url.PathEscape(taskID), nil, &status); err != nil {
		return nil, fmt.Errorf("job status: %w", err)
	}
	return &status, nil
}

// Download streams the converted output file. The returned name comes from the
// Content-Disposition header when the server provides one. The caller must
// close the reader.
func (c *Client) Download(ctx context.Context, projectID string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/conversion/"+url.PathEscape(projectID)+"/download", nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "*/*")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download output (latency=%v): %w", time.Since(requestStart), err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", &RequestFailed{Status: resp.StatusCode, Body: string(body)}
	}

	fallback := fmt.Sprintf("project-%s-output.ttl", projectID)
	name := attachmentFilename(resp.Header.Get("Content-Disposition"), fallback)
	return resp.Body, name, nil
}
