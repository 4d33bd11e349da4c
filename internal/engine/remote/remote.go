package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rossyndicate/srst/internal/log"
	"github.com/rossyndicate/srst/internal/model"
)

const (
	// DefaultRequestsPerSecond is the default client side request rate.
	DefaultRequestsPerSecond = 5

	requestIDHeader = "X-Request-Id"
)

// EngineConfig configures the remote processing gateway engine.
type EngineConfig struct {
	// BaseURL is the gateway API base URL (e.g. "https://gateway.example.org").
	BaseURL string
	// Project is the cloud project the tasks run under.
	Project string
	// Token is the bearer token of the requests, optional.
	Token string
	// RequestsPerSecond limits the request rate to the gateway.
	RequestsPerSecond float64
	// HTTPClient is the HTTP client for the API requests.
	HTTPClient *http.Client
	// NewRequestID returns the idempotency key of every request.
	NewRequestID func() string
	// Logger for logging.
	Logger log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	if c.Project == "" {
		return fmt.Errorf("project is required")
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must be positive")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.NewRequestID == nil {
		c.NewRequestID = uuid.NewString
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "engine.Remote"})

	return nil
}

// Engine implements engine.Engine over the processing gateway HTTP API.
type Engine struct {
	baseURL      string
	project      string
	token        string
	httpClient   *http.Client
	limiter      *rate.Limiter
	newRequestID func() string
	logger       log.Logger
}

// NewEngine creates a new remote engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		baseURL:      cfg.BaseURL,
		project:      cfg.Project,
		token:        cfg.Token,
		httpClient:   cfg.HTTPClient,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		newRequestID: cfg.NewRequestID,
		logger:       cfg.Logger,
	}, nil
}

// ActiveTasks returns the number of ready or running tasks of the project.
func (e *Engine) ActiveTasks(ctx context.Context) (int, error) {
	q := url.Values{}
	q.Set("state", strings.Join([]string{string(model.TaskStateReady), string(model.TaskStateRunning)}, ","))

	var list taskListJSON
	if err := e.do(ctx, http.MethodGet, e.projectURL("tasks")+"?"+q.Encode(), nil, &list); err != nil {
		return 0, fmt.Errorf("could not list tasks: %w", err)
	}

	n := 0
	for _, t := range list.Tasks {
		if model.TaskState(t.State).Active() {
			n++
		}
	}
	return n, nil
}

// StartExport submits an export to the gateway.
func (e *Engine) StartExport(ctx context.Context, req model.ExportRequest) (*model.ExportTask, error) {
	if req.Rows == nil && req.Collection == nil {
		return nil, fmt.Errorf("export %q has no source: %w", req.Name, model.ErrNotValid)
	}

	requestID := e.newRequestID()
	body := fromExportRequest(requestID, req)

	var task taskJSON
	if err := e.doWithID(ctx, http.MethodPost, e.projectURL("exports"), requestID, body, &task); err != nil {
		return nil, fmt.Errorf("could not start export: %w", err)
	}

	e.logger.WithValues(log.Kv{"export": req.Name, "task-id": task.ID, "request-id": requestID}).Debugf("Export started")

	return task.toModel(), nil
}

// Task returns the state of a task.
func (e *Engine) Task(ctx context.Context, id string) (*model.ExportTask, error) {
	var task taskJSON
	if err := e.do(ctx, http.MethodGet, e.projectURL("tasks/"+url.PathEscape(id)), nil, &task); err != nil {
		return nil, fmt.Errorf("could not get task %s: %w", id, err)
	}

	return task.toModel(), nil
}

// AggregateIDs returns the values of a property for every image of the collection.
func (e *Engine) AggregateIDs(ctx context.Context, collection model.ImageCollection, property string) ([]string, error) {
	body := aggregateJSON{
		Collection: fromCollection(collection),
		Property:   property,
	}

	var result aggregateResultJSON
	if err := e.do(ctx, http.MethodPost, e.projectURL("collections:aggregate"), body, &result); err != nil {
		return nil, fmt.Errorf("could not aggregate %s: %w", property, err)
	}

	return result.Values, nil
}

func (e *Engine) projectURL(resource string) string {
	return fmt.Sprintf("%s/v1/projects/%s/%s", e.baseURL, url.PathEscape(e.project), resource)
}

func (e *Engine) do(ctx context.Context, method, u string, in, out any) error {
	return e.doWithID(ctx, method, u, e.newRequestID(), in, out)
}

func (e *Engine) doWithID(ctx context.Context, method, u, requestID string, in, out any) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	req.Header.Set(requestIDHeader, requestID)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func responseError(status int, data []byte) error {
	msg := strings.TrimSpace(string(data))
	var e errorJSON
	if err := json.Unmarshal(data, &e); err == nil && e.Error.Message != "" {
		msg = e.Error.Message
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("HTTP %d: %s: %w", status, msg, model.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("HTTP %d: %s: %w", status, msg, model.ErrAlreadyExists)
	case http.StatusBadRequest:
		return fmt.Errorf("HTTP %d: %s: %w", status, msg, model.ErrNotValid)
	}
	return fmt.Errorf("HTTP %d: %s", status, msg)
}
