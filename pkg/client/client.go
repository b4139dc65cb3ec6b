// Package client is the Go client for the taskdeck API. Client wraps the
// HTTP surface; TaskList layers the view-reconciliation rules on top of it:
// local state changes only after the server acknowledges the mutation.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// APIError is a non-2xx response decoded from the server's {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client issues requests against one taskdeck server.
type Client struct {
	baseURL string
	httpc   *http.Client
	clock   types.Clock
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithClock replaces the clock used for the client-side deadline fast path.
func WithClock(clock types.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// New returns a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		clock:   types.SystemClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tasks returns the full task list in the server's canonical order.
func (c *Client) Tasks(ctx context.Context) ([]types.TaskRow, error) {
	var tasks []types.TaskRow
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task. The deadline is checked locally first with the
// same today semantics the server applies, so an out-of-range date is
// rejected without a round trip; the server re-checks identically.
func (c *Client) CreateTask(ctx context.Context, in types.NewTask) (*types.TaskRow, error) {
	if in.DueDate != nil && *in.DueDate != "" {
		if err := types.ValidateDueDate(*in.DueDate, types.ISODate(c.clock.Now())); err != nil {
			return nil, err
		}
	}
	var row types.TaskRow
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateTask applies a sparse patch to one task and returns the full row.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error) {
	body := make(map[string]any, 5)
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Status != nil {
		body["status"] = *patch.Status
	}
	switch {
	case patch.ClearCategory:
		body["category_id"] = nil
	case patch.CategoryID != nil:
		body["category_id"] = *patch.CategoryID
	}
	switch {
	case patch.ClearDueDate:
		body["due_date"] = nil
	case patch.DueDate != nil:
		body["due_date"] = *patch.DueDate
	}
	if patch.Position != nil {
		body["position"] = *patch.Position
	}

	var row types.TaskRow
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), body, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteTask removes a task. Deleting an id the server no longer has still
// succeeds.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// Reorder submits the desired task order; the server rewrites positions to
// match the list index.
func (c *Client) Reorder(ctx context.Context, ids []int64) error {
	body := map[string][]int64{"ids": ids}
	return c.do(ctx, http.MethodPost, "/api/tasks/reorder", body, nil)
}

// Categories returns all categories sorted by name.
func (c *Client) Categories(ctx context.Context) ([]types.Category, error) {
	var categories []types.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the created row.
func (c *Client) CreateCategory(ctx context.Context, name string) (*types.Category, error) {
	var cat types.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Health probes the server's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// do sends one request and decodes the response into out when non-nil.
// Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "server error"}
		var decoded struct {
			Message string `json:"message"`
		}
		if err := sonic.Unmarshal(data, &decoded); err == nil && decoded.Message != "" {
			apiErr.Message = decoded.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
