package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// ErrNoScript is returned when a golden comparison is requested for a
// scenario whose compile failed.
var ErrNoScript = errors.New("no script to compare: compile failed")

// AssertGolden compares the result's script against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	if result.CompileErr != nil {
		return ErrNoScript
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Script))
	return nil
}

// GoldenPath returns the golden file for a scenario loaded from disk:
// golden/<scenario file name>.golden next to the scenario file.
func GoldenPath(scenario *Scenario) string {
	dir := filepath.Dir(scenario.path)
	base := filepath.Base(scenario.path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// UpdateGolden writes the result's script as the scenario's golden file.
func UpdateGolden(scenario *Scenario, result *Result) error {
	if result.CompileErr != nil {
		return ErrNoScript
	}

	goldenPath := GoldenPath(scenario)
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, []byte(result.Script), 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the result's script matches the scenario's
// golden file byte for byte.
func CompareGolden(scenario *Scenario, result *Result) (bool, error) {
	if result.CompileErr != nil {
		return false, ErrNoScript
	}

	goldenData, err := os.ReadFile(GoldenPath(scenario))
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return bytes.Equal(goldenData, []byte(result.Script)), nil
}
