package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
)

func openTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "builds.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func compileBuild(t *testing.T, moduleName string, instructions ...ir.Instruction) Build {
	t.Helper()
	doc := ir.NewDocument(instructions...)
	c, err := compiler.New(compiler.Options{ModuleName: moduleName})
	require.NoError(t, err)
	result, err := c.Compile(doc)
	require.NoError(t, err)
	b, err := NewBuild(doc, result, moduleName)
	require.NoError(t, err)
	return b
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builds.db")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	mode, err := r.pragma("journal_mode")
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)

	version, err := r.pragma("user_version")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(currentSchemaVersion), version)
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builds.db")
	ctx := context.Background()

	r, err := Open(path)
	require.NoError(t, err)
	_, _, err = r.Record(ctx, compileBuild(t, "", ir.Instruction{Type: "INPUT", Args: "x1"}))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	for n := 0; n < 3; n++ {
		r, err = Open(path)
		require.NoError(t, err)
		n, err := r.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.NoError(t, r.Close())
	}
}

func TestNewBuild(t *testing.T) {
	doc := ir.NewDocument(ir.Instruction{Type: "INPUT", Args: "x1"})
	result, err := (&compiler.Compiler{}).Compile(doc)
	require.NoError(t, err)

	b, err := NewBuild(doc, result, "")
	require.NoError(t, err)

	assert.Equal(t, compiler.DefaultModuleName, b.ModuleName)
	assert.Equal(t, result.Script.Hash(), b.ScriptHash)
	assert.Equal(t, documentHash(t, doc), b.IRHash)
	assert.Equal(t, 1, b.ClauseCount)
	assert.Equal(t, ir.CompilerVersion, b.CompilerVersion)
	assert.Equal(t, ir.IRVersion, b.IRVersion)

	id, err := uuid.Parse(b.ScriptID)
	require.NoError(t, err)
	assert.Equal(t, result.Script.ID(), id)

	_, err = NewBuild(doc, nil, "")
	assert.Error(t, err)
}

func TestRecordIdempotent(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()
	b := compileBuild(t, "", ir.Instruction{Type: "INPUT", Args: "x1"})

	seq1, inserted, err := r.Record(ctx, b)
	require.NoError(t, err)
	assert.True(t, inserted)

	seq2, inserted, err := r.Record(ctx, b)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, seq1, seq2)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListOrderedBySeq(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	empty, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var want []string
	for i := 0; i < 4; i++ {
		b := compileBuild(t, "", ir.Instruction{Type: "INPUT", Args: fmt.Sprintf("x%d", i)})
		_, _, err := r.Record(ctx, b)
		require.NoError(t, err)
		want = append(want, b.ScriptHash)
	}

	builds, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, builds, 4)
	for i, b := range builds {
		assert.Equal(t, want[i], b.ScriptHash)
		if i > 0 {
			assert.Greater(t, b.Seq, builds[i-1].Seq)
		}
	}
}

func TestLookup(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()
	b := compileBuild(t, "Plant.Reactor", ir.Instruction{Type: "TON", Args: "t1.DN"})
	seq, _, err := r.Record(ctx, b)
	require.NoError(t, err)

	byHash, err := r.Lookup(ctx, b.ScriptHash)
	require.NoError(t, err)
	assert.Equal(t, seq, byHash.Seq)
	assert.Equal(t, "Plant.Reactor", byHash.ModuleName)

	byID, err := r.Lookup(ctx, b.ScriptID)
	require.NoError(t, err)
	assert.Equal(t, byHash, byID)

	_, err = r.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupByIR(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()
	inst := ir.Instruction{Type: "INPUT", Args: "x1"}

	a := compileBuild(t, "", inst)
	b := compileBuild(t, "Plant.Reactor", inst)
	require.Equal(t, a.IRHash, b.IRHash)
	require.NotEqual(t, a.ScriptHash, b.ScriptHash)

	for _, build := range []Build{a, b} {
		_, _, err := r.Record(ctx, build)
		require.NoError(t, err)
	}

	builds, err := r.LookupByIR(ctx, a.IRHash)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	assert.Equal(t, compiler.DefaultModuleName, builds[0].ModuleName)
	assert.Equal(t, "Plant.Reactor", builds[1].ModuleName)

	none, err := r.LookupByIR(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := openTestRegistry(t, WithLogger(zap.New(core)))

	_, _, err := r.Record(context.Background(), compileBuild(t, "", ir.Instruction{Type: "INPUT", Args: "x1"}))
	require.NoError(t, err)

	entries := logs.FilterMessage("build recorded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].ContextMap()["inserted"])
}

func documentHash(t *testing.T, doc any) string {
	t.Helper()
	hash, err := ir.DocumentHash(doc)
	require.NoError(t, err)
	return hash
}
