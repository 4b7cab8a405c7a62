package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/modelscan/internal/integration"
	"github.com/idelchi/modelscan/internal/modelscan"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// AllowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var AllowedOutputs = []string{"table", "json", "paths"}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var options modelscan.Options

	cmd := &cobra.Command{
		Use:   "modelscan [flags]",
		Short: "Find machine-learning models in well-known cache directories",
		Long: heredoc.Docf(`
			modelscan finds machine-learning model files in the usual cache and download
			directories and reports each model directory with its source and size.

			A directory is reported when it directly contains a file ending in one of:
			  %v

			Searched directories (in order), unless --root is given:
			  ~/.cache/huggingface/hub
			  ~/.cache/torch/transformers
			  ~/.cache/torch/hub
			  ~/models
			  ~/Downloads/models

			The '-I' flag is available if using the integration script for shell usage.
			It will then run an interactive mode where the model directories are piped to 'fzf'.
		`, modelscan.ModelExtensions),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, options)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: table, json or paths")
	flags.StringSliceVarP(&options.Roots, "root", "r", nil, "Directories to scan instead of the default locations")
	flags.IntVarP(&options.Workers, "workers", "w", 0, "Number of parallel walkers (0=automatic)")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	flags.BoolVarP(&options.Integration, "init", "i", false, "Output init script for shell usage")

	return cmd
}

func (c CLI) run(cmd *cobra.Command, options modelscan.Options) error {
	if options.Version {
		fmt.Fprintln(cmd.OutOrStdout(), c.version)

		return nil
	}

	if options.Integration {
		rendered, err := integration.Render()
		if err != nil {
			return fmt.Errorf("rendering integration script: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)

		return nil
	}

	if !slices.Contains(AllowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, AllowedOutputs)
	}

	if options.Workers < 0 {
		return errors.New("workers cannot be negative")
	}

	roots, err := resolveRoots(cmd.Flags(), options.Roots)
	if err != nil {
		return err
	}

	options.Roots = roots

	return logic(cmd.Context(), options, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// resolveRoots returns the user's roots made absolute, or the default
// candidate roots when --root was not given.
func resolveRoots(flags *pflag.FlagSet, roots []string) ([]string, error) {
	if !flags.Changed("root") {
		return modelscan.CandidateRoots()
	}

	resolved := make([]string, 0, len(roots))

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving root %q: %w", root, err)
		}

		resolved = append(resolved, abs)
	}

	return resolved, nil
}
