package artifact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/plutusladder/internal/compiler"
)

// deploymentGuide renders the operator steps for putting the script on chain.
func deploymentGuide(m *Manifest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PlutusLadder Deployment Guide\n")
	fmt.Fprintf(&b, "=============================\n\n")
	fmt.Fprintf(&b, "Module:       %s\n", m.ModuleName)
	fmt.Fprintf(&b, "Script ID:    %s\n", m.ScriptID)
	fmt.Fprintf(&b, "Script hash:  %s\n", m.ScriptHash)
	fmt.Fprintf(&b, "IR hash:      %s\n", m.IRHash)
	fmt.Fprintf(&b, "Conditions:   %d\n", m.ClauseCount)
	fmt.Fprintf(&b, "Compiler:     plutusladder %s (IR v%s)\n\n", m.CompilerVersion, m.IRVersion)

	steps := []string{
		fmt.Sprintf("Add %s to a Plutus project as %s.hs and build it with cabal.", fileNames[KindScript], modulePath(m.ModuleName)),
		"Serialise `validator` to a .plutus text envelope with writeFileTextEnvelope.",
		"Derive the script address: cardano-cli address build --payment-script-file validator.plutus --testnet-magic <N>.",
		"Lock funds at the address with a datum; any datum and redeemer are accepted.",
		"Spend from the address. The transaction validates only when every condition holds.",
		fmt.Sprintf("Check failures in the node trace: each failing condition logs \"Condition <n> failed: <type>\" (see %s).", fileNames[KindTests]),
	}
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

// testingChecklist lists one check per clause plus a summary by kind.
func testingChecklist(m *Manifest, clauses []compiler.Clause) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PlutusLadder Testing Framework\n")
	fmt.Fprintf(&b, "==============================\n\n")
	fmt.Fprintf(&b, "Script ID: %s\n\n", m.ScriptID)

	if len(clauses) == 0 {
		fmt.Fprintf(&b, "The validator has no conditions and accepts every spend.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "For each condition, submit one spend where it holds and one where it fails.\n")
	fmt.Fprintf(&b, "The failing spend must be rejected with the listed trace.\n\n")
	for _, c := range clauses {
		fmt.Fprintf(&b, "[%d] %s (%s)\n", c.Index, c.Label, c.Kind)
		fmt.Fprintf(&b, "    holds when: %s\n", c.Condition)
		fmt.Fprintf(&b, "    trace:      %s\n", compiler.TraceLabel(c))
	}

	kinds := make([]string, 0, len(m.Kinds))
	for kind := range m.Kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	fmt.Fprintf(&b, "\nCoverage by kind:\n")
	for _, kind := range kinds {
		fmt.Fprintf(&b, "  %-15s %d\n", kind, m.Kinds[kind])
	}
	return b.String()
}

// modulePath turns a dotted module name into its source path, e.g. Plant/Reactor.
func modulePath(module string) string {
	return strings.ReplaceAll(module, ".", "/")
}
