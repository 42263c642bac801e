package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTolerance is the absolute tolerance applied when a suite does not
// set one.
const DefaultTolerance = 1e-3

// Suite is a named list of conversion cases.
type Suite struct {
	// Name uniquely identifies this suite and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this suite checks.
	Description string `yaml:"description"`

	// Tolerance is the absolute difference allowed between a result and
	// its expected value. Zero means DefaultTolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Table is an optional unit-table file (CUE or YAML) applied on top of
	// the built-in definitions. Relative paths are resolved against the
	// suite file's directory.
	Table string `yaml:"table,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases"`
}

// Case is one conversion and its expected outcome. Exactly one of Expect
// and ExpectError is set.
type Case struct {
	// Name labels the case. Empty names are derived from the conversion.
	Name  string  `yaml:"name,omitempty"`
	Value float64 `yaml:"value"`
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`

	// Expect is the expected result.
	Expect *float64 `yaml:"expect,omitempty"`

	// ExpectError is the expected error code, e.g. INCOMPATIBLE_DIMENSIONS.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Label returns the case name, or "<value> <from> to <to>" when unnamed.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%g %s to %s", c.Value, c.From, c.To)
}

// EffectiveTolerance returns the suite tolerance, or DefaultTolerance.
func (s *Suite) EffectiveTolerance() float64 {
	if s.Tolerance == 0 {
		return DefaultTolerance
	}
	return s.Tolerance
}

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	// Strict field validation catches typos like "expected:" vs "expect:".
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if suite.Table != "" && !filepath.IsAbs(suite.Table) {
		suite.Table = filepath.Join(filepath.Dir(path), suite.Table)
	}

	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}

	return &suite, nil
}

// LoadSuites loads every .yaml and .yml file in dir, sorted by file name.
// A non-empty filter is a filepath.Match pattern applied to file names.
func LoadSuites(dir, filter string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read suites directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if filter != "" {
			ok, err := filepath.Match(filter, name)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
			}
			if !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)

	suites := make([]*Suite, 0, len(paths))
	for _, p := range paths {
		s, err := LoadSuite(p)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	if s.Table != "" {
		if _, err := os.Stat(s.Table); os.IsNotExist(err) {
			return fmt.Errorf("table file not found: %s", s.Table)
		}
	}

	for i, c := range s.Cases {
		if strings.TrimSpace(c.From) == "" || strings.TrimSpace(c.To) == "" {
			return fmt.Errorf("cases[%d]: from and to are required", i)
		}
		if c.Expect == nil && c.ExpectError == "" {
			return fmt.Errorf("cases[%d]: one of expect or expect_error is required", i)
		}
		if c.Expect != nil && c.ExpectError != "" {
			return fmt.Errorf("cases[%d]: expect and expect_error are mutually exclusive", i)
		}
	}

	return nil
}
