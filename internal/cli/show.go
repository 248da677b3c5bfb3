package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/plutusladder/internal/artifact"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Dir string
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Kind    artifact.Kind `json:"kind"`
	File    string        `json:"file"`
	Content string        `json:"content"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <ir|script|manifest|guide|tests>",
		Short: "Print a file from the deployment package",
		Long: `Print one artifact of a deployment package written by compile --package.

  ir        the compiled IR document
  script    the validator script
  manifest  script ID, hashes and versions
  guide     deployment steps
  tests     per-condition testing checklist`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{"ir", "script", "manifest", "guide", "tests"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "deployment package directory (default from config)")

	return cmd
}

func runShow(opts *ShowOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd.OutOrStdout())

	kind, err := artifact.ParseKind(name)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidOption, err.Error())
	}

	dir := firstNonEmpty(opts.Dir, opts.settings().ArtifactDir)
	data, err := artifact.Read(dir, kind)
	if errors.Is(err, artifact.ErrNotFound) {
		return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("%s not found in %s", artifact.FileName(kind), dir))
	}
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err.Error())
	}

	if formatter.JSON() {
		return formatter.Success(ShowResult{Kind: kind, File: artifact.FileName(kind), Content: string(data)})
	}
	_, err = formatter.Writer.Write(data)
	return err
}
