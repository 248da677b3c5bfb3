package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/plutusladder/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run every YAML scenario under a directory. Each scenario compiles
one IR document and checks the outcome, optionally against a golden script.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, bad filter)

Examples:
  plutusladder test ./scenarios
  plutusladder test ./scenarios --filter "reactor*"
  plutusladder test ./scenarios --update
  plutusladder test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd.OutOrStdout())

	h := harness.New(harness.WithLogger(opts.log()))
	suite, err := h.RunSuite(dir, harness.SuiteOptions{Filter: opts.Filter, Update: opts.Update})
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err.Error())
	}

	if formatter.JSON() {
		return outputTestJSON(formatter, suite)
	}
	return outputTestText(formatter, suite)
}

func failedError(suite *harness.SuiteResult) error {
	if suite.Failed == 0 {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
}

// outputTestJSON outputs the suite result as JSON.
func outputTestJSON(formatter *OutputFormatter, suite *harness.SuiteResult) error {
	if suite.Failed > 0 {
		if err := formatter.Failure("E_TEST_FAILED", fmt.Sprintf("%d scenario(s) failed", suite.Failed), suite); err != nil {
			return err
		}
		return failedError(suite)
	}
	return formatter.Success(suite)
}

// outputTestText outputs one line per scenario and a summary.
func outputTestText(formatter *OutputFormatter, suite *harness.SuiteResult) error {
	w := formatter.Writer

	if suite.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}

	for _, sr := range suite.Scenarios {
		switch {
		case sr.Pass && sr.Updated:
			fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		case sr.Pass:
			fmt.Fprintf(w, "✓ %s\n", sr.Name)
		default:
			fmt.Fprintf(w, "✗ %s\n", sr.Name)
			for _, e := range sr.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", suite.Passed, suite.Failed, suite.Total)

	if err := failedError(suite); err != nil {
		return err
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
