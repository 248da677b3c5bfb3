package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
)

// Scenario defines one conformance case: an IR document and the expected
// outcome of compiling it.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// IR is the path of the IR file to compile, relative to the scenario file.
	// Exactly one of IR and Document is set.
	IR string `yaml:"ir,omitempty"`

	// Document is an inline IR document.
	Document any `yaml:"document,omitempty"`

	// Omit lists top-level keys removed from the IR before compiling, so one
	// well-formed program can drive many missing-key cases.
	Omit []string `yaml:"omit,omitempty"`

	// ModuleName overrides the emitted module name.
	ModuleName string `yaml:"module_name,omitempty"`

	// Expect describes the compile outcome.
	Expect Expect `yaml:"expect"`

	// Golden compares the emitted script with the scenario's golden file.
	Golden bool `yaml:"golden,omitempty"`

	// path is the file the scenario was loaded from.
	path string
}

// Expect describes the expected outcome. With Error set the compile must
// fail with that diagnostic; otherwise it must succeed and every other
// non-empty field is checked.
type Expect struct {
	// Error is the expected diagnostic.
	Error *ExpectError `yaml:"error,omitempty"`

	// Clauses lists the expected clauses in order. Subset match per clause:
	// empty fields are not compared.
	Clauses []ExpectClause `yaml:"clauses,omitempty"`

	// Contains lists substrings the script must contain.
	Contains []string `yaml:"contains,omitempty"`

	// Kinds gives the expected clause count per kind.
	Kinds map[string]int `yaml:"kinds,omitempty"`
}

// ExpectError names an expected compile diagnostic.
type ExpectError struct {
	Code  string `yaml:"code"`            // E201, E202 or E203
	Key   string `yaml:"key,omitempty"`   // schema key, for E201/E202
	Index *int   `yaml:"index,omitempty"` // instruction index, for E203
}

// ExpectClause is the expected form of one clause.
type ExpectClause struct {
	Label     string `yaml:"label,omitempty"`
	Condition string `yaml:"condition,omitempty"`
	Kind      string `yaml:"kind,omitempty"`
}

// Path returns the file the scenario was loaded from, or "" for scenarios
// built in code.
func (s *Scenario) Path() string { return s.path }

// IRPath returns the IR file path resolved against the scenario's directory.
func (s *Scenario) IRPath() string {
	if s.IR == "" || filepath.IsAbs(s.IR) || s.path == "" {
		return s.IR
	}
	return filepath.Join(filepath.Dir(s.path), s.IR)
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so that typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.path = path

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

var errorCodes = map[string]bool{
	compiler.ErrCodeMissingSchemaKey:   true,
	compiler.ErrCodeMalformedSection:   true,
	compiler.ErrCodeInvalidInstruction: true,
}

// validateScenario checks that required fields are present and consistent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}

	switch {
	case s.IR == "" && s.Document == nil:
		return errors.New("one of ir or document is required")
	case s.IR != "" && s.Document != nil:
		return errors.New("ir and document are mutually exclusive")
	}

	if s.IR != "" {
		if _, err := os.Stat(s.IRPath()); os.IsNotExist(err) {
			return fmt.Errorf("ir file not found: %s", s.IRPath())
		}
	}

	for _, key := range s.Omit {
		if !slices.Contains(ir.SchemaKeys, key) {
			return fmt.Errorf("omit: %q is not a schema key", key)
		}
	}

	if s.ModuleName != "" && !compiler.ValidModuleName(s.ModuleName) {
		return fmt.Errorf("module_name %q is not a valid Haskell module name", s.ModuleName)
	}

	if e := s.Expect.Error; e != nil {
		if !errorCodes[e.Code] {
			return fmt.Errorf("expect.error: unknown code %q", e.Code)
		}
		if len(s.Expect.Clauses) > 0 || len(s.Expect.Contains) > 0 || len(s.Expect.Kinds) > 0 || s.Golden {
			return errors.New("expect.error cannot be combined with clauses, contains, kinds or golden")
		}
	}

	for kind := range s.Expect.Kinds {
		if !knownKind(kind) {
			return fmt.Errorf("expect.kinds: unknown kind %q", kind)
		}
	}
	for i, c := range s.Expect.Clauses {
		if c.Kind != "" && !knownKind(c.Kind) {
			return fmt.Errorf("expect.clauses[%d]: unknown kind %q", i, c.Kind)
		}
	}

	return nil
}

func knownKind(name string) bool {
	for _, k := range compiler.Kinds {
		if string(k) == name {
			return true
		}
	}
	return false
}
