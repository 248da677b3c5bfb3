package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
)

func testBundle(t *testing.T, instructions ...ir.Instruction) Bundle {
	t.Helper()
	doc := ir.NewDocument(instructions...)
	result, err := (&compiler.Compiler{}).Compile(doc)
	require.NoError(t, err)
	return Bundle{Document: doc, Result: result}
}

func TestWriteCreatesEveryArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pkg")
	b := testBundle(t,
		ir.Instruction{Type: "INPUT", Args: "x1"},
		ir.Instruction{Type: "COMPARATOR", Args: "temp < 710"},
	)

	m, err := Write(dir, b)
	require.NoError(t, err)

	for _, kind := range Kinds {
		_, err := os.Stat(filepath.Join(dir, FileName(kind)))
		assert.NoError(t, err, kind)
	}

	assert.Equal(t, b.Result.Script.ID().String(), m.ScriptID)
	assert.Equal(t, b.Result.Script.Hash(), m.ScriptHash)
	assert.Equal(t, documentHash(t, b.Document), m.IRHash)
	assert.Equal(t, compiler.DefaultModuleName, m.ModuleName)
	assert.Equal(t, 2, m.ClauseCount)
	assert.Equal(t, map[string]int{"input": 1, "comparator": 1}, m.Kinds)
	assert.Len(t, m.Files, len(Kinds))
}

func TestReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := testBundle(t, ir.Instruction{Type: "TON", Args: "t1.DN"})

	written, err := Write(dir, b)
	require.NoError(t, err)

	script, err := Read(dir, KindScript)
	require.NoError(t, err)
	assert.Equal(t, b.Result.Script.String(), string(script))

	irJSON, err := Read(dir, KindIR)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(irJSON, &decoded))
	assert.Equal(t, written.IRHash, documentHash(t, decoded), "written IR hashes like the input")

	m, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, written, m)
}

func TestWriteDeterministic(t *testing.T) {
	b := testBundle(t, ir.Instruction{Type: "CTU", Args: "parts >= 10"})
	dirA, dirB := t.TempDir(), t.TempDir()

	_, err := Write(dirA, b)
	require.NoError(t, err)
	_, err = Write(dirB, b)
	require.NoError(t, err)

	for _, kind := range Kinds {
		a, err := Read(dirA, kind)
		require.NoError(t, err)
		bb, err := Read(dirB, kind)
		require.NoError(t, err)
		assert.Equal(t, a, bb, kind)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir(), KindGuide)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "PlutusLadder_Deployment_Guide.txt")
}

func TestReadUnknownKind(t *testing.T) {
	_, err := Read(t.TempDir(), Kind("bogus"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Script ")
	require.NoError(t, err)
	assert.Equal(t, KindScript, kind)

	_, err = ParseKind("plutus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ir, script, manifest, guide, tests")
}

func TestWriteNilResult(t *testing.T) {
	_, err := Write(t.TempDir(), Bundle{Document: ir.NewDocument()})
	assert.Error(t, err)
}

func TestGuideAndChecklist(t *testing.T) {
	dir := t.TempDir()
	b := testBundle(t, ir.Instruction{Type: "XIC", Args: "start"})
	b.ModuleName = "Plant.Reactor"
	b.Result.Script = compiler.Emitter{ModuleName: b.ModuleName}.Emit(compiler.Group(b.Result.Clauses))

	m, err := Write(dir, b)
	require.NoError(t, err)

	guide, err := Read(dir, KindGuide)
	require.NoError(t, err)
	assert.Contains(t, string(guide), "Module:       Plant.Reactor")
	assert.Contains(t, string(guide), "Plant/Reactor.hs")
	assert.Contains(t, string(guide), m.ScriptID)

	tests, err := Read(dir, KindTests)
	require.NoError(t, err)
	assert.Contains(t, string(tests), "[0] xic (input)")
	assert.Contains(t, string(tests), "holds when: start")
	assert.Contains(t, string(tests), "trace:      Condition 0 failed: xic")
}

func TestChecklistEmptyProgram(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, testBundle(t))
	require.NoError(t, err)

	tests, err := Read(dir, KindTests)
	require.NoError(t, err)
	assert.Contains(t, string(tests), "no conditions")
}

func documentHash(t *testing.T, doc any) string {
	t.Helper()
	hash, err := ir.DocumentHash(doc)
	require.NoError(t, err)
	return hash
}
