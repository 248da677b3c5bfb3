package compiler

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regenerate fixtures with: go test ./internal/compiler -update
func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestEmitGolden(t *testing.T) {
	script := Emit([]string{
		`traceIfFalse "Condition 0 failed: input" (x1)`,
		`traceIfFalse "Condition 1 failed: comparator" (temp < 710)`,
	})

	newGoldie(t).Assert(t, "input_comparator", []byte(script))
}

func TestEmitEmptyBodyIsTrue(t *testing.T) {
	script := Emit(nil)

	newGoldie(t).Assert(t, "empty_program", []byte(script))
	assert.Contains(t, script.String(), "    in  True\n")
	assert.NotContains(t, script.String(), "&&")
}

func TestEmitCustomModule(t *testing.T) {
	script := Emitter{ModuleName: "Plant.Reactor"}.Emit([]string{`traceIfFalse "Condition 0 failed: input" (x1)`})

	assert.Contains(t, script.String(), "module Plant.Reactor (validator) where\n")
	assert.NotContains(t, script.String(), DefaultModuleName)
}

func TestEmitTemplateParts(t *testing.T) {
	script := Emit([]string{`traceIfFalse "Condition 0 failed: input" (x1)`}).String()

	parts := []string{
		"mkValidator :: BuiltinData -> BuiltinData -> ScriptContext -> Bool\n",
		"mkValidator _datum _redeemer ctx =\n",
		"    let info = scriptContextTxInfo ctx\n",
		"{-# INLINABLE mkValidator #-}\n",
		"validator = mkValidatorScript $$(PlutusTx.compile [|| wrap ||])\n",
		"    wrap = mkUntypedValidator mkValidator\n",
	}
	last := -1
	for _, part := range parts[:3] {
		idx := strings.Index(script, part)
		require.GreaterOrEqual(t, idx, 0, "missing %q", part)
		assert.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
	for _, part := range parts[3:] {
		assert.Contains(t, script, part)
	}
}

func TestEmitJoinsWithAndOnePerLine(t *testing.T) {
	script := Emit([]string{"a", "b", "c"}).String()

	assert.Contains(t, script, "    in  a\n        && b\n        && c\n")
	assert.Equal(t, 2, strings.Count(script, "&&"))
}

func TestEmitDeterministic(t *testing.T) {
	clauses := []string{"a", "b"}

	first := Emit(clauses)
	second := Emit(clauses)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Hash(), second.Hash())
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, uuid.Version(5), first.ID().Version())
	assert.NotEqual(t, first.Hash(), Emit([]string{"b", "a"}).Hash())
}

func TestValidModuleName(t *testing.T) {
	valid := []string{"LadderValidator", "Plant.Reactor", "A", "Plant.Line_2.Validator'"}
	invalid := []string{"", "ladder", "Plant.", ".Plant", "Plant..Reactor", "Plant.reactor", "Plant Reactor", "1Plant"}

	for _, name := range valid {
		assert.True(t, ValidModuleName(name), name)
	}
	for _, name := range invalid {
		assert.False(t, ValidModuleName(name), name)
	}
}
