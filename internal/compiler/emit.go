package compiler

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/plutusladder/internal/ir"
)

// DefaultModuleName is the Haskell module emitted when none is configured.
const DefaultModuleName = "LadderValidator"

// moduleNamePattern matches a hierarchical Haskell module name, e.g. "Plant.Reactor.Validator".
var moduleNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_']*(\.[A-Z][A-Za-z0-9_']*)*$`)

// ValidModuleName reports whether name can be used as the emitted module name.
func ValidModuleName(name string) bool {
	return moduleNamePattern.MatchString(name)
}

// ValidatorScript is the emitted validator source. It is plain text and
// immutable once produced.
type ValidatorScript string

// String returns the script text.
func (s ValidatorScript) String() string { return string(s) }

// Hash returns the domain-separated SHA-256 of the script text.
func (s ValidatorScript) Hash() string { return ir.ScriptHash(string(s)) }

// ID returns the name-based UUID of the script. Identical scripts share an ID.
func (s ValidatorScript) ID() uuid.UUID { return ir.ArtifactID(s.Hash()) }

// Emitter renders validator scripts.
type Emitter struct {
	// ModuleName is the Haskell module declared by the script.
	// Empty means DefaultModuleName. Callers validate it with ValidModuleName.
	ModuleName string
}

// Emit renders rendered clauses with the default module name.
func Emit(rendered []string) ValidatorScript {
	return Emitter{}.Emit(rendered)
}

// Emit renders the validator script for the given rendered clauses.
//
// The body is the conjunction of the clauses, one per line. With no clauses
// the body is True: an empty ladder program places no conditions on the
// transaction. Output depends only on the input.
func (e Emitter) Emit(rendered []string) ValidatorScript {
	module := e.ModuleName
	if module == "" {
		module = DefaultModuleName
	}

	var b strings.Builder
	b.WriteString(scriptHeader)
	b.WriteString("module " + module + " (validator) where\n")
	b.WriteString(scriptImports)
	b.WriteString(scriptSignature)
	b.WriteString("    let info = scriptContextTxInfo ctx\n")
	b.WriteString("    in  " + body(rendered) + "\n")
	b.WriteString(scriptWrapper)
	return ValidatorScript(b.String())
}

// body joins clauses with && so each clause starts its own line.
func body(rendered []string) string {
	if len(rendered) == 0 {
		return "True"
	}
	return strings.Join(rendered, "\n        && ")
}

const scriptHeader = `-- Code generated by plutusladder. DO NOT EDIT.

{-# LANGUAGE DataKinds         #-}
{-# LANGUAGE NoImplicitPrelude #-}
{-# LANGUAGE OverloadedStrings #-}
{-# LANGUAGE TemplateHaskell   #-}

`

const scriptImports = `
import           Plutus.Script.Utils.V2.Typed.Scripts (mkUntypedValidator)
import           Plutus.V2.Ledger.Api                 (ScriptContext, Validator, mkValidatorScript, scriptContextTxInfo)
import qualified PlutusTx
import           PlutusTx.Prelude

`

const scriptSignature = `{-# INLINABLE mkValidator #-}
mkValidator :: BuiltinData -> BuiltinData -> ScriptContext -> Bool
mkValidator _datum _redeemer ctx =
`

const scriptWrapper = `
validator :: Validator
validator = mkValidatorScript $$(PlutusTx.compile [|| wrap ||])
  where
    wrap = mkUntypedValidator mkValidator
`
