package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/specvital/testrig/pkg/compose"
)

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	var coverage bool

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Print the composed runner configuration",
		Long: `Compose the karma configuration from testrig.yaml and the built-in defaults.

json and yaml print the full runner configuration; text summarizes the
plugins, frameworks, reporters and extra loaders.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(rootOpts, coverage, cmd)
		},
	}

	cmd.Flags().BoolVar(&coverage, "coverage", false, "enable code coverage regardless of config")

	return cmd
}

func runCompose(opts *RootOptions, coverage bool, cmd *cobra.Command) error {
	dir, err := opts.workDir()
	if err != nil {
		return WrapExitError(ExitCommandError, "working directory", err)
	}

	cfg, err := opts.loadConfig(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if coverage {
		cfg.Features.CodeCoverage = true
	}

	composer := compose.New(
		compose.WithWorkDir(dir),
		compose.WithLogger(newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)),
	)

	result, err := composer.Compose(cfg.Features, cfg.Karma)
	if err != nil {
		return WrapExitError(ExitCommandError, "compose", err)
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		return writeJSON(out, result.Runner)
	case "yaml":
		return writeYAML(out, result.Runner)
	default:
		return writeComposeText(out, result)
	}
}

func writeComposeText(w io.Writer, result *compose.Result) error {
	plugins := newTable(w, "Plugins")
	plugins.AppendHeader(table.Row{"#", "Capability", "Provided By"})
	for i, spec := range result.Bundle.Plugins {
		if name, ok := spec.Name(); ok {
			plugins.AppendRow(table.Row{i + 1, name, "(name)"})
			continue
		}
		d, _ := spec.Descriptor()
		for j, e := range d {
			idx := ""
			if j == 0 {
				idx = fmt.Sprint(i + 1)
			}
			plugins.AppendRow(table.Row{idx, string(e.ID), fmt.Sprint(e.Provider)})
		}
	}
	plugins.Render()

	summary := newTable(w, "Runner")
	summary.AppendRows([]table.Row{
		{"Files", result.Files},
		{"Frameworks", strings.Join(result.Bundle.Frameworks, ", ")},
		{"Reporters", strings.Join(result.Bundle.Reporters, ", ")},
	})
	for _, rule := range result.Bundle.ExtraLoaders {
		summary.AppendRow(table.Row{"Extra loader", rule.Loader})
	}
	summary.Render()

	return nil
}
