package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/plutusladder/internal/registry"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Registry string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [script-id|script-hash]",
		Short: "List builds recorded in the registry",
		Long: `List every build recorded by compile --registry, oldest first,
or show the single build with the given script ID or hash.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runHistory(cmd.Context(), opts, key, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Registry, "registry", "", "registry database (default from config)")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, key string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd.OutOrStdout())

	dbPath := firstNonEmpty(opts.Registry, opts.settings().Registry)
	if dbPath == "" {
		return commandError(formatter, ErrCodeInvalidOption, "no registry configured: pass --registry or set registry in the config file")
	}

	reg, err := registry.Open(dbPath, registry.WithLogger(opts.log()))
	if err != nil {
		return commandError(formatter, ErrCodeRegistry, err.Error())
	}
	defer reg.Close()

	var builds []registry.Build
	if key != "" {
		b, err := reg.Lookup(ctx, key)
		if errors.Is(err, registry.ErrNotFound) {
			return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("no build matches %s", key))
		}
		if err != nil {
			return commandError(formatter, ErrCodeRegistry, err.Error())
		}
		builds = []registry.Build{b}
	} else {
		builds, err = reg.List(ctx)
		if err != nil {
			return commandError(formatter, ErrCodeRegistry, err.Error())
		}
	}

	if formatter.JSON() {
		return formatter.Success(builds)
	}
	return outputHistoryText(formatter, builds)
}

func outputHistoryText(formatter *OutputFormatter, builds []registry.Build) error {
	if len(builds) == 0 {
		fmt.Fprintln(formatter.Writer, "No builds recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSCRIPT ID\tMODULE\tCLAUSES\tCOMPILER")
	for _, b := range builds {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", b.Seq, b.ScriptID, b.ModuleName, b.ClauseCount, b.CompilerVersion)
	}
	return tw.Flush()
}
