package harness

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SuiteOptions controls RunSuite.
type SuiteOptions struct {
	Filter string // glob matched against scenario file names without extension
	Update bool   // rewrite golden files instead of comparing
}

// ScenarioResult is the outcome of one scenario in a suite.
type ScenarioResult struct {
	Name    string   `json:"name"`
	Path    string   `json:"path"`
	Pass    bool     `json:"pass"`
	Updated bool     `json:"updated,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// SuiteResult summarizes a suite run.
type SuiteResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// FindScenarios returns every .yaml/.yml file under dir whose base name
// matches filter. Files under golden/ directories are skipped.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// RunSuite loads and runs every scenario under dir.
// Scenario failures are reported in the result; the error is reserved for
// an unreadable directory or a bad filter.
func (h *Harness) RunSuite(dir string, opts SuiteOptions) (*SuiteResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := FindScenarios(dir, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find scenarios: %w", err)
	}

	suite := &SuiteResult{Scenarios: make([]ScenarioResult, 0, len(files))}
	for _, file := range files {
		sr := h.runFile(file, opts.Update)
		suite.Scenarios = append(suite.Scenarios, sr)
		suite.Total++
		if sr.Pass {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}

	h.logger.Info("suite finished",
		zap.String("dir", dir),
		zap.Int("passed", suite.Passed),
		zap.Int("failed", suite.Failed),
	)
	return suite, nil
}

func (h *Harness) runFile(file string, update bool) ScenarioResult {
	sr := ScenarioResult{Name: filepath.Base(file), Path: file}

	scenario, err := LoadScenario(file)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("failed to load scenario: %v", err)}
		return sr
	}
	sr.Name = scenario.Name

	result, err := h.Run(scenario)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return sr
	}
	sr.Errors = result.Errors

	if scenario.Golden && result.CompileErr == nil {
		switch {
		case update:
			if err := UpdateGolden(scenario, result); err != nil {
				sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
				return sr
			}
			sr.Updated = true
		default:
			match, err := CompareGolden(scenario, result)
			if errors.Is(err, os.ErrNotExist) {
				sr.Errors = append(sr.Errors, "golden file missing (run with --update to create it)")
				return sr
			}
			if err != nil {
				sr.Errors = append(sr.Errors, fmt.Sprintf("golden comparison failed: %v", err))
				return sr
			}
			if !match {
				sr.Errors = append(sr.Errors, "script does not match golden file (run with --update to regenerate)")
				return sr
			}
		}
	}

	sr.Pass = len(sr.Errors) == 0
	return sr
}
