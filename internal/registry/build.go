package registry

import (
	"errors"
	"fmt"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
)

// ErrNotFound is returned by lookups that match no build.
var ErrNotFound = errors.New("build not found")

// Build is one recorded compile.
type Build struct {
	Seq             int64  `json:"seq"`
	ScriptID        string `json:"script_id"`
	ScriptHash      string `json:"script_hash"`
	IRHash          string `json:"ir_hash"`
	ModuleName      string `json:"module_name"`
	ClauseCount     int    `json:"clause_count"`
	CompilerVersion string `json:"compiler_version"`
	IRVersion       string `json:"ir_version"`
}

// NewBuild describes a compile of doc that produced result.
// Seq is assigned by Record.
func NewBuild(doc any, result *compiler.Result, moduleName string) (Build, error) {
	if result == nil {
		return Build{}, errors.New("new build: nil result")
	}

	irHash, err := ir.DocumentHash(doc)
	if err != nil {
		return Build{}, fmt.Errorf("new build: %w", err)
	}

	if moduleName == "" {
		moduleName = compiler.DefaultModuleName
	}

	return Build{
		ScriptID:        result.Script.ID().String(),
		ScriptHash:      result.Script.Hash(),
		IRHash:          irHash,
		ModuleName:      moduleName,
		ClauseCount:     len(result.Clauses),
		CompilerVersion: ir.CompilerVersion,
		IRVersion:       ir.IRVersion,
	}, nil
}
