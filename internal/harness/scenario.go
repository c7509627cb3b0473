package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// SampleFixture names the bundled sample fixture in a scenario.
	SampleFixture = "sample"

	// DefaultRequestID is recorded in traces when a scenario sets none.
	DefaultRequestID = "test-request-default"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is SampleFixture or a path to a fixture YAML file.
	Fixture string `yaml:"fixture"`

	// Flow contains request paths with optional expectations.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the trace and the assembled recipes.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// RequestID is an optional fixed request id for deterministic traces.
	// If empty, defaults to "test-request-default".
	RequestID string `yaml:"request_id,omitempty"`
}

func (s *Scenario) requestID() string {
	if s.RequestID == "" {
		return DefaultRequestID
	}
	return s.RequestID
}

// FlowStep is one request sent through the query service.
type FlowStep struct {
	// Query is the request path, with or without the content:// prefix.
	Query string `yaml:"query"`

	// Expect specifies the expected outcome. If nil, any outcome passes.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a flow step.
type ExpectClause struct {
	// Kind is the expected request kind ("list", "recipe", ...).
	Kind string `yaml:"kind,omitempty"`

	// Rows is the expected row count. Nil skips the check.
	Rows *int `yaml:"rows,omitempty"`

	// Columns is the expected column list, in order.
	Columns []string `yaml:"columns,omitempty"`

	// Error is the expected query error code. Empty means success is expected.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the assembled recipes.
type Assertion struct {
	Type string `yaml:"type"`

	// ID is the recipe id (used by recipe and not_found).
	ID string `yaml:"id,omitempty"`

	// Expect holds expected recipe values (used by recipe). Supported keys:
	// title, description, photo, prep_time, ingredients, steps.
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// IDs is the expected listing order (used by list_order).
	IDs []string `yaml:"ids,omitempty"`

	// Kind and Count are used by trace_count.
	Kind  string `yaml:"kind,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRecipe     = "recipe"
	AssertNotFound   = "not_found"
	AssertListOrder  = "list_order"
	AssertTraceCount = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// A relative fixture path is resolved against the scenario's directory.
// Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Fixture != "" && scenario.Fixture != SampleFixture && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
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

	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}

	if len(s.Flow) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("flow or assertions must be non-empty")
	}

	for i, step := range s.Flow {
		if step.Query == "" {
			return fmt.Errorf("flow[%d]: query is required", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertRecipe:
		if a.ID == "" {
			return fmt.Errorf("recipe assertion requires id")
		}
		for key := range a.Expect {
			if !recipeFields[key] {
				return fmt.Errorf("recipe assertion: unknown field %q", key)
			}
		}
	case AssertNotFound:
		if a.ID == "" {
			return fmt.Errorf("not_found assertion requires id")
		}
	case AssertListOrder:
		if a.IDs == nil {
			return fmt.Errorf("list_order assertion requires ids")
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("trace_count assertion requires kind")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
