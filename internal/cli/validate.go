package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/plutusladder/internal/compiler"
	"github.com/roach88/plutusladder/internal/ir"
	"github.com/roach88/plutusladder/internal/source"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool                       `json:"valid"`
	Instructions int                        `json:"instructions"`
	Errors       []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <ir-file>",
		Short: "Check an IR document without compiling it",
		Long: `Check a LadderCore IR document and report every defect at once:
missing keys, malformed sections and invalid instructions.

Exit codes:
  0 - Valid
  1 - One or more defects
  2 - IR file unreadable`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd.OutOrStdout())

	doc, err := source.Load(path)
	if err != nil {
		return loadError(formatter, err)
	}

	errs := compiler.Validate(doc)
	opts.log().Debug("validated", zap.String("path", path), zap.Int("defects", len(errs)))

	result := ValidationResult{
		Valid:        len(errs) == 0,
		Instructions: len(instructionsOf(doc)),
		Errors:       errs,
	}
	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, path, result)
}

func instructionsOf(doc any) []any {
	if m, ok := doc.(map[string]any); ok {
		return ir.Document(m).Instructions()
	}
	return nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, path string, result ValidationResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid (%d instruction(s))\n", path, result.Instructions)
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}

	return failed
}
