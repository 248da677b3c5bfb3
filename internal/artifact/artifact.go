// Package artifact writes and reads the deployment package produced by a
// compile: the IR, the validator script, a manifest, a deployment guide and
// a testing checklist, all in one directory.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
)

// Kind names one file of a package.
type Kind string

// Artifact kinds.
const (
	KindIR       Kind = "ir"
	KindScript   Kind = "script"
	KindManifest Kind = "manifest"
	KindGuide    Kind = "guide"
	KindTests    Kind = "tests"
)

// Kinds lists every artifact kind in package order.
var Kinds = []Kind{KindIR, KindScript, KindManifest, KindGuide, KindTests}

var fileNames = map[Kind]string{
	KindIR:       "Validator_IR.json",
	KindScript:   "Compiled_Plutus_Script.plutus",
	KindManifest: "manifest.json",
	KindGuide:    "PlutusLadder_Deployment_Guide.txt",
	KindTests:    "PlutusLadder_Testing_Framework.txt",
}

// ErrNotFound is returned when a requested artifact is not in the package.
var ErrNotFound = errors.New("artifact not found")

// FileName returns the file name used for kind.
func FileName(kind Kind) string {
	return fileNames[kind]
}

// ParseKind converts a command-line name to a Kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := fileNames[kind]; !ok {
		names := make([]string, len(Kinds))
		for i, k := range Kinds {
			names[i] = string(k)
		}
		return "", fmt.Errorf("unknown artifact %q (expected one of: %s)", s, strings.Join(names, ", "))
	}
	return kind, nil
}

// Bundle is the input to Write.
type Bundle struct {
	Document   any              // decoded IR that was compiled
	Result     *compiler.Result // output of the compile
	ModuleName string           // empty means compiler.DefaultModuleName
}

// Manifest describes a written package.
type Manifest struct {
	ScriptID        string         `json:"script_id"`
	ScriptHash      string         `json:"script_hash"`
	IRHash          string         `json:"ir_hash"`
	ModuleName      string         `json:"module_name"`
	ClauseCount     int            `json:"clause_count"`
	Kinds           map[string]int `json:"kinds"`
	CompilerVersion string         `json:"compiler_version"`
	IRVersion       string         `json:"ir_version"`
	Files           []string       `json:"files"`
}

// Write renders every artifact of b into dir, creating dir if needed.
// Existing files are overwritten. Output depends only on b.
func Write(dir string, b Bundle) (*Manifest, error) {
	if b.Result == nil {
		return nil, errors.New("write artifacts: nil result")
	}

	irJSON, err := ir.MarshalCanonical(b.Document)
	if err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, irJSON, "", "    "); err != nil {
		return nil, fmt.Errorf("write artifacts: indent ir: %w", err)
	}
	pretty.WriteByte('\n')

	irHash, err := ir.DocumentHash(b.Document)
	if err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}

	m := newManifest(b, irHash)
	manifestJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("write artifacts: marshal manifest: %w", err)
	}
	manifestJSON = append(manifestJSON, '\n')

	contents := map[Kind][]byte{
		KindIR:       pretty.Bytes(),
		KindScript:   []byte(b.Result.Script),
		KindManifest: manifestJSON,
		KindGuide:    []byte(deploymentGuide(m)),
		KindTests:    []byte(testingChecklist(m, b.Result.Clauses)),
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write artifacts: %w", err)
	}
	for _, kind := range Kinds {
		if err := os.WriteFile(filepath.Join(dir, fileNames[kind]), contents[kind], 0o644); err != nil {
			return nil, fmt.Errorf("write artifacts: %w", err)
		}
	}
	return m, nil
}

func newManifest(b Bundle, irHash string) *Manifest {
	module := b.ModuleName
	if module == "" {
		module = compiler.DefaultModuleName
	}

	kinds := make(map[string]int)
	for kind, n := range compiler.KindCounts(b.Result.Clauses) {
		kinds[string(kind)] = n
	}

	files := make([]string, len(Kinds))
	for i, kind := range Kinds {
		files[i] = fileNames[kind]
	}

	return &Manifest{
		ScriptID:        b.Result.Script.ID().String(),
		ScriptHash:      b.Result.Script.Hash(),
		IRHash:          irHash,
		ModuleName:      module,
		ClauseCount:     len(b.Result.Clauses),
		Kinds:           kinds,
		CompilerVersion: ir.CompilerVersion,
		IRVersion:       ir.IRVersion,
		Files:           files,
	}
}

// Read returns the raw content of one artifact in dir.
// A missing file yields an error wrapping ErrNotFound.
func Read(dir string, kind Kind) ([]byte, error) {
	name, ok := fileNames[kind]
	if !ok {
		return nil, fmt.Errorf("read artifact: unknown kind %q", kind)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s (%s): %w", kind, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", kind, err)
	}
	return data, nil
}

// ReadManifest reads and decodes the manifest in dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := Read(dir, KindManifest)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
