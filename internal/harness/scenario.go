package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Scene is the scene file to compile. Relative paths are resolved
	// against the scenario file's directory by LoadScenario.
	Scene string `yaml:"scene"`

	// Assertions validate the compiled program.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of the compiled program.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Item is the item id (definition, elapsed, sample).
	Item string `yaml:"item,omitempty"`

	// Line is the expected program line (program_contains).
	Line string `yaml:"line,omitempty"`

	// Contains lists fragments the definition must contain (definition).
	Contains []string `yaml:"contains,omitempty"`

	// MS is the expected end of the main chain (elapsed).
	MS *float64 `yaml:"ms,omitempty"`

	// At is the sample time as a duration expression (sample).
	At string `yaml:"at,omitempty"`

	// Expect holds expected attribute values (sample). Subset match.
	Expect map[string]any `yaml:"expect,omitempty"`

	// Count is the expected number of definitions (item_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertProgramContains = "program_contains"
	AssertDefinition      = "definition"
	AssertElapsed         = "elapsed"
	AssertSample          = "sample"
	AssertItemCount       = "item_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the scene path relative to the scenario BEFORE validation
	if scenario.Scene != "" && !filepath.IsAbs(scenario.Scene) {
		scenario.Scene = filepath.Join(filepath.Dir(path), scenario.Scene)
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

	if s.Scene == "" {
		return fmt.Errorf("scene is required")
	}
	if _, err := os.Stat(s.Scene); os.IsNotExist(err) {
		return fmt.Errorf("scene file not found: %s", s.Scene)
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertProgramContains:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for program_contains", index)
		}
	case AssertDefinition:
		if a.Item == "" || len(a.Contains) == 0 {
			return fmt.Errorf("assertions[%d]: item and contains are required for definition", index)
		}
	case AssertElapsed:
		if a.Item == "" || a.MS == nil {
			return fmt.Errorf("assertions[%d]: item and ms are required for elapsed", index)
		}
	case AssertSample:
		if a.Item == "" || a.At == "" {
			return fmt.Errorf("assertions[%d]: item and at are required for sample", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for sample", index)
		}
	case AssertItemCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for item_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
