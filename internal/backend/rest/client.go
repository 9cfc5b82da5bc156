// Package rest implements the service.Service interface over the to-do
// REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/service"
)

// Endpoint paths, relative to the base URL.
const (
	usersPath          = "api/users"
	loginPath          = "api/users/login"
	tasksPath          = "api/tasks"
	completedTasksPath = "api/tasks/completed"
	openTasksPath      = "api/tasks/incompleted"
	taskPath           = "api/tasks/{id}"
	taskContentPath    = "api/tasks/{id}/content"
)

// RequestIDHeader carries a per-request UUID for correlating logs.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// Client implements service.Service over HTTP.
type Client struct {
	basePath string
	hc       *http.Client
	timeout  time.Duration
	logger   *log.Logger
}

// New creates a client for cfg.BaseURL using the default transport.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.BaseURL, http.DefaultClient, logger)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, hc *http.Client, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{basePath: u.String(), hc: hc, logger: logger}, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, u service.NewUser) (service.AuthResult, error) {
	var res service.AuthResult
	err := c.do(ctx, c.hc, http.MethodPost, usersPath, nil, u, http.StatusCreated, &res)
	return res, err
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, cred service.Credentials) (service.AuthResult, error) {
	var res service.AuthResult
	err := c.do(ctx, c.hc, http.MethodPost, loginPath, nil, cred, http.StatusCreated, &res)
	return res, err
}

// ListTasks returns the tasks selected by filter.
func (c *Client) ListTasks(ctx context.Context, filter service.Filter, token string) ([]service.Task, error) {
	path, err := listPath(filter)
	if err != nil {
		return nil, err
	}
	tasks := []service.Task{}
	if err := c.do(ctx, c.authed(ctx, token), http.MethodGet, path, nil, nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// AddTask creates a task.
func (c *Client) AddTask(ctx context.Context, fields service.TaskFields, token string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, c.authed(ctx, token), http.MethodPost, tasksPath, nil, fields, http.StatusOK, &task)
	return task, err
}

// UpdateTaskStatus flips the completed flag of a task.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, token string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, c.authed(ctx, token), http.MethodPut, taskPath, map[string]string{"id": id}, struct{}{}, http.StatusOK, &task)
	return task, err
}

// UpdateTaskContent replaces the title and description of a task.
func (c *Client) UpdateTaskContent(ctx context.Context, fields service.TaskFields, id, token string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, c.authed(ctx, token), http.MethodPut, taskContentPath, map[string]string{"id": id}, fields, http.StatusOK, &task)
	return task, err
}

// DeleteTask removes a task. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id, token string) error {
	return c.do(ctx, c.authed(ctx, token), http.MethodDelete, taskPath, map[string]string{"id": id}, nil, http.StatusOK, nil)
}

func listPath(filter service.Filter) (string, error) {
	switch filter {
	case service.FilterAll, "":
		return tasksPath, nil
	case service.FilterCompleted:
		return completedTasksPath, nil
	case service.FilterIncompleted:
		return openTasksPath, nil
	}
	return "", fmt.Errorf("invalid filter: %s", filter)
}

// authed wraps the base client so every request carries
// "Authorization: Bearer <token>".
func (c *Client) authed(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.hc)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

// do performs a single request. body, when non-nil, is sent as JSON; out,
// when non-nil, receives the decoded response. An empty 2xx body leaves
// out untouched.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, params map[string]string, body any, want int, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	urls := googleapi.ResolveRelative(c.basePath, path)
	req, err := http.NewRequestWithContext(ctx, method, urls, reqBody)
	if err != nil {
		return err
	}
	if params != nil {
		googleapi.Expand(req.URL, params)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	res, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", req.URL.Path, "request_id", reqID, "err", err)
		return wrapError(err)
	}
	defer googleapi.CloseBody(res)
	c.logger.Debug("request", "method", method, "path", req.URL.Path, "status", res.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start).Round(time.Millisecond))

	if err := checkResponse(res, want); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return wrapError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
