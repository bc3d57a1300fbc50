package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"rdfmap/internal/logging"
	"rdfmap/internal/querycache"
)

// HTTPDoer describes the HTTP client used by the API client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the RDFMap web API.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPDoer
	cache      *querycache.Cache
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache attaches a query cache consulted for read queries and invalidated
// on mutations.
func WithCache(cache *querycache.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "webapi")
		}
	}
}

// New creates an API client for the given base URL.
func New(baseURL, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("server base url required")
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	client := &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doRaw executes the request and returns the response body. Non-2xx responses
// are converted into *RequestFailed carrying the body text.
func (c *Client) doRaw(req *http.Request) ([]byte, http.Header, error) {
	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("request complete",
		logging.String("method", req.Method),
		logging.String("path", req.URL.Path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
		logging.String(logging.FieldCorrelationID, req.Header.Get("X-Request-ID")),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, &RequestFailed{Status: resp.StatusCode, Body: string(body)}
	}
	return body, resp.Header, nil
}

// decode unmarshals a JSON payload into out. A 2xx body that is not valid
// JSON is an error rather than a silent empty result.
func decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("decode response: empty body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	body, _, err := c.doRaw(req)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// getCachedJSON serves the query from the cache when possible, keyed by
// (resource, encoded parameters).
func (c *Client) getCachedJSON(ctx context.Context, resource, path string, query url.Values, out any) error {
	params := query.Encode()
	if payload, ok := c.cache.Get(resource, params); ok {
		return decode(payload, out)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	body, _, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if err := decode(body, out); err != nil {
		return err
	}
	c.cache.Set(resource, params, body)
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, query url.Values, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, query, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	respBody, _, err := c.doRaw(req)
	if err != nil {
		return err
	}
	return decode(respBody, out)
}

func (c *Client) postMultipart(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	respBody, _, err := c.doRaw(req)
	if err != nil {
		return err
	}
	return decode(respBody, out)
}

func (c *Client) getText(ctx context.Context, path string, query url.Values) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/yaml, text/plain")
	body, _, err := c.doRaw(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) invalidate(resources ...string) {
	c.cache.Invalidate(resources...)
}

func attachmentFilename(header, fallback string) string {
	if strings.TrimSpace(header) == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return fallback
	}
	if name := strings.TrimSpace(params["filename"]); name != "" {
		// The server picks the name, never the directory.
		name = filepath.Base(name)
		if name != "." && name != ".." && name != string(filepath.Separator) {
			return name
		}
	}
	return fallback
}
