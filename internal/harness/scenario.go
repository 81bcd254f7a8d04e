package harness

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios send a sequence of HTTP requests and check each response.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are executed in order against the same database.
	Steps []Step `yaml:"steps"`
}

// Step is one request and the response it should produce.
type Step struct {
	Request Request `yaml:"request"`

	// Expect specifies the expected response.
	// If nil, the response is recorded in the trace but not checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Request describes an HTTP request to send.
type Request struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`

	// Body is JSON-encoded and sent as the request body.
	Body any `yaml:"body,omitempty"`

	// RawBody is sent verbatim. Used for malformed payloads.
	// Mutually exclusive with Body.
	RawBody *string `yaml:"raw_body,omitempty"`
}

// Expect specifies expected response behavior.
type Expect struct {
	Status int `yaml:"status"`

	// Body is a subset match against the decoded response body.
	Body any `yaml:"body,omitempty"`

	// EmptyBody requires the response to carry no body.
	EmptyBody bool `yaml:"empty_body,omitempty"`
}

var validMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		req := step.Request
		if !validMethods[strings.ToUpper(req.Method)] {
			return fmt.Errorf("step %d: unsupported method %q", i+1, req.Method)
		}
		if !strings.HasPrefix(req.Path, "/") {
			return fmt.Errorf("step %d: path must start with /", i+1)
		}
		if req.Body != nil && req.RawBody != nil {
			return fmt.Errorf("step %d: body and raw_body are mutually exclusive", i+1)
		}
		if exp := step.Expect; exp != nil {
			if exp.Status < 100 || exp.Status > 599 {
				return fmt.Errorf("step %d: expect.status %d is not an HTTP status", i+1, exp.Status)
			}
			if exp.EmptyBody && exp.Body != nil {
				return fmt.Errorf("step %d: expect.body and expect.empty_body are mutually exclusive", i+1)
			}
		}
	}

	return nil
}
