package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/plutusladder/internal/artifact"
	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
	"github.com/roach88/plutusladder/internal/registry"
	"github.com/roach88/plutusladder/internal/source"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output     string // script output file
	Package    bool   // write the deployment package
	Dir        string // package directory, overrides config
	ModuleName string // overrides config
	Registry   string // registry database, overrides config
}

// CompileSummary is the JSON payload of a successful compile.
type CompileSummary struct {
	ScriptID    string            `json:"script_id"`
	ScriptHash  string            `json:"script_hash"`
	IRHash      string            `json:"ir_hash"`
	ModuleName  string            `json:"module_name"`
	ClauseCount int               `json:"clause_count"`
	Clauses     []compiler.Clause `json:"clauses"`
	Script      string            `json:"script"`
	Output      string            `json:"output,omitempty"`
	PackageDir  string            `json:"package_dir,omitempty"`
	RegistrySeq int64             `json:"registry_seq,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <ir-file>",
		Short: "Compile a LadderCore IR document to a Plutus validator",
		Long: `Compile a LadderCore IR document (.json, .yaml or .cue) into a
PlutusTx validator script.

Without --output or --package the script is printed to stdout.

Exit codes:
  0 - Compiled
  2 - IR unreadable or rejected, or output could not be written

Examples:
  plutusladder compile reactor.json
  plutusladder compile reactor.cue -o Reactor.hs --module Plant.Reactor
  plutusladder compile reactor.yaml --package --dir ./deploy --registry builds.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the script to this file")
	cmd.Flags().BoolVar(&opts.Package, "package", false, "write the deployment package")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "deployment package directory (default from config)")
	cmd.Flags().StringVar(&opts.ModuleName, "module", "", "Haskell module name (default from config)")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "record the build in this registry database")

	return cmd
}

func runCompile(ctx context.Context, opts *CompileOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd.OutOrStdout())
	logger := opts.log()
	cfg := opts.settings()

	moduleName := firstNonEmpty(opts.ModuleName, cfg.ModuleName)
	c, err := compiler.New(compiler.Options{ModuleName: moduleName})
	if err != nil {
		return commandError(formatter, ErrCodeInvalidOption, err.Error())
	}

	doc, err := source.Load(path)
	if err != nil {
		return loadError(formatter, err)
	}
	logger.Debug("IR loaded", zap.String("path", path))

	result, err := c.Compile(doc)
	if err != nil {
		logger.Debug("compile rejected", zap.String("path", path), zap.Error(err))
		ve := compiler.Describe(err)
		return commandError(formatter, ve.Code, ve.Field+": "+ve.Message)
	}

	summary := CompileSummary{
		ScriptID:    result.Script.ID().String(),
		ScriptHash:  result.Script.Hash(),
		ModuleName:  firstNonEmpty(moduleName, compiler.DefaultModuleName),
		ClauseCount: len(result.Clauses),
		Clauses:     result.Clauses,
		Script:      result.Script.String(),
	}
	logger.Debug("compiled",
		zap.String("script_id", summary.ScriptID),
		zap.Int("clauses", summary.ClauseCount),
	)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Script), 0o644); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing script: %v", err))
		}
		summary.Output = opts.Output
	}

	if opts.Package {
		dir := firstNonEmpty(opts.Dir, cfg.ArtifactDir)
		if _, err := artifact.Write(dir, artifact.Bundle{Document: doc, Result: result, ModuleName: summary.ModuleName}); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, err.Error())
		}
		summary.PackageDir = dir
		logger.Debug("package written", zap.String("dir", dir))
	}

	if dbPath := firstNonEmpty(opts.Registry, cfg.Registry); dbPath != "" {
		seq, err := recordBuild(ctx, dbPath, doc, result, summary.ModuleName, logger)
		if err != nil {
			return commandError(formatter, ErrCodeRegistry, err.Error())
		}
		summary.RegistrySeq = seq
	}

	if formatter.JSON() {
		// Only the JSON summary carries the IR hash.
		irHash, err := ir.DocumentHash(doc)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, err.Error())
		}
		summary.IRHash = irHash
	}

	return outputCompileSuccess(formatter, summary)
}

func recordBuild(ctx context.Context, dbPath string, doc any, result *compiler.Result, moduleName string, logger *zap.Logger) (int64, error) {
	reg, err := registry.Open(dbPath, registry.WithLogger(logger))
	if err != nil {
		return 0, err
	}
	defer reg.Close()

	build, err := registry.NewBuild(doc, result, moduleName)
	if err != nil {
		return 0, err
	}
	seq, _, err := reg.Record(ctx, build)
	return seq, err
}

// outputCompileSuccess prints the script, or a summary when it went to files.
func outputCompileSuccess(formatter *OutputFormatter, s CompileSummary) error {
	if formatter.JSON() {
		return formatter.Success(s)
	}

	w := formatter.Writer
	if s.Output == "" && s.PackageDir == "" {
		fmt.Fprint(w, s.Script)
		return nil
	}

	fmt.Fprintf(w, "✓ Compiled %d clause(s) into module %s\n", s.ClauseCount, s.ModuleName)
	fmt.Fprintf(w, "  script id: %s\n", s.ScriptID)
	if s.Output != "" {
		fmt.Fprintf(w, "Wrote script to %s\n", s.Output)
	}
	if s.PackageDir != "" {
		fmt.Fprintf(w, "Wrote deployment package to %s\n", s.PackageDir)
	}
	if s.RegistrySeq != 0 {
		fmt.Fprintf(w, "Recorded build #%d\n", s.RegistrySeq)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
