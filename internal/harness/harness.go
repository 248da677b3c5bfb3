package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
	"github.com/roach88/plutusladder/internal/source"
)

// Harness runs scenarios.
type Harness struct {
	logger *zap.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run compiles the scenario's IR and checks every expectation.
//
// A compile diagnostic is part of the result, not an error: the scenario may
// expect it. The returned error is reserved for scenarios that cannot be run
// at all, such as an unreadable IR file.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	doc, err := h.document(scenario)
	if err != nil {
		return nil, err
	}

	c, err := compiler.New(compiler.Options{ModuleName: scenario.ModuleName})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	compiled, compileErr := c.Compile(doc)
	if compileErr != nil {
		result.CompileErr = compileErr
	} else {
		result.Script = compiled.Script
		result.Clauses = compiled.Clauses
	}

	checkExpectations(scenario.Expect, result)

	h.logger.Debug("scenario run",
		zap.String("scenario", scenario.Name),
		zap.Bool("pass", result.Pass),
		zap.String("error_code", result.ErrorCode()),
		zap.Int("clauses", len(result.Clauses)),
	)
	return result, nil
}

func (h *Harness) document(scenario *Scenario) (any, error) {
	doc := scenario.Document
	if scenario.IR != "" {
		loaded, err := source.Load(scenario.IRPath())
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		doc = loaded
	}

	if len(scenario.Omit) == 0 {
		return doc, nil
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scenario %s: omit needs a mapping document", scenario.Name)
	}
	return ir.Document(m).Without(scenario.Omit...), nil
}
