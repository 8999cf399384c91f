package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/grid"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the segment text fed to the engine.
	Input string `yaml:"input,omitempty"`

	// InputFile names a file holding the input, relative to the scenario.
	InputFile string `yaml:"input_file,omitempty"`

	// Bound is "auto" (default) or a positive integer.
	Bound string `yaml:"bound,omitempty"`

	// Policy is "lenient" (default) or "strict".
	Policy string `yaml:"policy,omitempty"`

	// Expect holds the summary values to check.
	Expect Expect `yaml:"expect"`

	// Assertions validate individual cells and rejected lines.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect lists expected run summary values. Nil fields are not checked.
type Expect struct {
	Overlaps *int `yaml:"overlaps,omitempty"`
	Kept     *int `yaml:"kept,omitempty"`
	Diagonal *int `yaml:"diagonal,omitempty"`
	Rejected *int `yaml:"rejected,omitempty"`
	Size     *int `yaml:"size,omitempty"`

	// Error is the expected engine error code, e.g. BOUND_EXCEEDED.
	// When set, the run must fail with that code.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates one detail of a run.
type Assertion struct {
	// Type is one of cell, threshold, rejected_line.
	Type string `yaml:"type"`

	// X and Y locate the cell (cell).
	X int `yaml:"x,omitempty"`
	Y int `yaml:"y,omitempty"`

	// Count is the expected cell value (cell) or number of cells (threshold).
	Count int `yaml:"count"`

	// Threshold is the minimum cell value counted (threshold).
	Threshold int `yaml:"threshold,omitempty"`

	// Line and Kind identify a rejected line (rejected_line).
	Line int    `yaml:"line,omitempty"`
	Kind string `yaml:"kind,omitempty"`
}

// Assertion type constants.
const (
	AssertCell         = "cell"
	AssertThreshold    = "threshold"
	AssertRejectedLine = "rejected_line"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
// input_file is resolved relative to the scenario's directory and read.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.InputFile != "" {
		inputPath := scenario.InputFile
		if !filepath.IsAbs(inputPath) {
			inputPath = filepath.Join(filepath.Dir(path), inputPath)
		}
		input, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: input file: %w", err)
		}
		scenario.Input = string(input)
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
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

// EngineConfig returns the engine settings the scenario asks for.
func (s *Scenario) EngineConfig() (engine.Config, error) {
	bound, err := grid.ParseBound(s.Bound)
	if err != nil {
		return engine.Config{}, err
	}
	policy, err := engine.ParsePolicy(s.Policy)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{Bound: bound, Policy: policy}, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Input != "" && s.InputFile != "" {
		return fmt.Errorf("input and input_file are mutually exclusive")
	}

	if _, err := s.EngineConfig(); err != nil {
		return err
	}

	if s.Expect.Error != "" {
		switch engine.RuntimeErrorCode(s.Expect.Error) {
		case engine.ErrCodeRejectedLine, engine.ErrCodeBoundExceeded:
		default:
			return fmt.Errorf("expect.error: unknown error code %q", s.Expect.Error)
		}
		if len(s.Assertions) > 0 {
			return fmt.Errorf("assertions cannot be combined with expect.error")
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
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
	case AssertCell:
		if a.X < 0 || a.Y < 0 {
			return fmt.Errorf("assertions[%d]: x and y must be non-negative for cell", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for cell", index)
		}
	case AssertThreshold:
		if a.Threshold < 1 {
			return fmt.Errorf("assertions[%d]: threshold must be at least 1", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for threshold", index)
		}
	case AssertRejectedLine:
		if a.Line < 1 {
			return fmt.Errorf("assertions[%d]: line is required for rejected_line", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
