package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/todod/internal/api"
	"github.com/roach88/todod/internal/store"
	"github.com/roach88/todod/internal/testutil"
)

// TraceEvent records one request and the response it produced.
type TraceEvent struct {
	Step      int             `json:"step"`
	Method    string          `json:"method"`
	Path      string          `json:"path"`
	Status    int             `json:"status"`
	RequestID string          `json:"request_id,omitempty"`
	Body      json.RawMessage `json:"body,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause matched.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	driver string
	logger *zap.Logger
}

// WithDriver selects the SQLite driver for the scenario database.
func WithDriver(name string) Option {
	return func(c *runConfig) { c.driver = name }
}

// WithLogger routes server logs to l. Logs are discarded by default.
func WithLogger(l *zap.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// Harness holds the per-run database and handler.
type Harness struct {
	store   *store.Store
	handler http.Handler
}

// Run executes a scenario and returns the result.
//
// Execution:
// 1. Create a fresh database in a temporary directory
// 2. Build the API handler with a deterministic request id sequence
// 3. Send each step's request and record the response
// 4. Check each response against its expect clause
//
// A returned error means the run could not be set up; expectation
// failures are reported in Result.Errors.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{driver: store.DriverCGO, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	dir, err := os.MkdirTemp("", "todod-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "todos.db"), store.WithDriver(cfg.driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario store: %w", err)
	}
	defer st.Close()

	srv := api.NewServer(st,
		api.WithLogger(cfg.logger),
		api.WithIDGenerator(testutil.NewSequenceGenerator(scenario.Name)),
	)

	h := &Harness{store: st, handler: srv.Handler()}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i+1, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return result, nil
}

func (h *Harness) executeStep(n int, step Step, result *Result) error {
	body, err := requestBody(step.Request)
	if err != nil {
		return err
	}

	method := strings.ToUpper(step.Request.Method)
	req := httptest.NewRequest(method, step.Request.Path, bytes.NewReader(body))
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	respBody := bytes.TrimSpace(rec.Body.Bytes())
	event := TraceEvent{
		Step:      n,
		Method:    method,
		Path:      step.Request.Path,
		Status:    rec.Code,
		RequestID: rec.Header().Get(api.RequestIDHeader),
		Body:      traceBody(respBody),
	}
	result.Trace = append(result.Trace, event)

	if step.Expect != nil {
		for _, msg := range checkExpect(step.Expect, rec.Code, respBody) {
			result.AddError(fmt.Sprintf("step %d (%s %s): %s", n, method, step.Request.Path, msg))
		}
	}
	return nil
}

func requestBody(r Request) ([]byte, error) {
	switch {
	case r.RawBody != nil:
		return []byte(*r.RawBody), nil
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

// traceBody keeps JSON bodies as-is and encodes anything else as a JSON string.
func traceBody(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	encoded, _ := json.Marshal(string(body))
	return encoded
}
