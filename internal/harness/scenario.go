package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// validName matches scenario names. Names double as golden file names, so
// only alphanumerics, underscore and dash are allowed.
var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Scenario defines a conformance test scenario: one command invocation and
// the output it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Args are the command-line arguments, without the program name.
	Args []string `yaml:"args"`

	// Stdin is fed to the command (read with --url-file -).
	Stdin string `yaml:"stdin,omitempty"`

	// CycleID is an optional fixed cycle ID for --verbose scenarios.
	// If empty, defaults to "test-cycle-default".
	CycleID string `yaml:"cycle_id,omitempty"`

	// Expect specifies what the invocation must produce.
	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected outcome of a scenario.
type Expect struct {
	// Stdout is the exact expected output. Nil skips the comparison.
	Stdout *string `yaml:"stdout,omitempty"`

	// ExitCode is the expected exit code.
	ExitCode int `yaml:"exit_code"`

	// StderrContains lists substrings that must all appear on stderr.
	StderrContains []string `yaml:"stderr_contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "exitcode:" vs "exit_code:"
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

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", path, s.Name, prev)
		}
		seen[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validName.MatchString(s.Name) {
		return fmt.Errorf("name %q may only contain letters, digits, '_' and '-'", s.Name)
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Expect.ExitCode < 0 {
		return fmt.Errorf("expect.exit_code must be non-negative")
	}

	for i, sub := range s.Expect.StderrContains {
		if sub == "" {
			return fmt.Errorf("expect.stderr_contains[%d]: empty substring", i)
		}
	}

	return nil
}
