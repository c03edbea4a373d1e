package cli

import (
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/specvital/testrig/pkg/domain"
	"github.com/specvital/testrig/pkg/inventory"
	"github.com/specvital/testrig/pkg/testfiles"
)

type inventoryFlags struct {
	failOnFocused bool
	workers       int
}

// NewInventoryCommand creates the inventory command.
func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &inventoryFlags{}

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List suites and tests in the configured test files",
		Long: `Resolve the configured test glob and count the suites and tests declared
in each matching file, without running them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(cmd.Context(), rootOpts, flags, cmd)
		},
	}

	cmd.Flags().BoolVar(&flags.failOnFocused, "fail-on-focused", false, "exit 1 when .only or fit/fdescribe is present")
	cmd.Flags().IntVar(&flags.workers, "workers", inventory.DefaultWorkers, "concurrent parsers (0: GOMAXPROCS)")

	return cmd
}

func runInventory(ctx context.Context, opts *RootOptions, flags *inventoryFlags, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dir, err := opts.workDir()
	if err != nil {
		return WrapExitError(ExitCommandError, "working directory", err)
	}

	cfg, err := opts.loadConfig(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)

	resolver := testfiles.NewResolver(dir)
	pattern, err := resolver.Resolve(cfg.Karma.Tests)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolve tests", err)
	}

	files, err := resolver.Expand(ctx, pattern)
	if err != nil {
		return WrapExitError(ExitCommandError, "expand tests", err)
	}

	result, err := inventory.Scan(ctx, files,
		inventory.WithLogger(logger),
		inventory.WithPattern(pattern),
		inventory.WithWorkers(flags.workers),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "scan", err)
	}

	out := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		err = writeJSON(out, result.Inventory)
	case "yaml":
		err = writeYAML(out, result.Inventory)
	default:
		err = writeInventoryText(out, result)
	}
	if err != nil {
		return err
	}

	if flags.failOnFocused {
		if focused := result.Inventory.Focused(); len(focused) > 0 {
			return &ExitError{Code: ExitFailure, Message: "focused tests in " + focused[0]}
		}
	}
	return nil
}

func writeInventoryText(w io.Writer, result *inventory.Result) error {
	t := newTable(w, "Inventory")
	t.AppendHeader(table.Row{"File", "Suites", "Tests", "Focused", "Pending", "Skipped"})

	for i := range result.Inventory.Files {
		f := &result.Inventory.Files[i]
		counts := f.CountByStatus()
		t.AppendRow(table.Row{
			f.Path,
			f.CountSuites(),
			f.CountTests(),
			counts[domain.TestStatusFocused],
			counts[domain.TestStatusPending],
			counts[domain.TestStatusSkipped],
		})
	}

	totals := result.Inventory.CountByStatus()
	t.AppendFooter(table.Row{
		"Total",
		result.Inventory.CountSuites(),
		result.Inventory.CountTests(),
		totals[domain.TestStatusFocused],
		totals[domain.TestStatusPending],
		totals[domain.TestStatusSkipped],
	})
	t.Render()

	if len(result.Errors) > 0 {
		errs := newTable(w, "Errors")
		errs.AppendHeader(table.Row{"File", "Error"})
		for _, e := range result.Errors {
			errs.AppendRow(table.Row{e.Path, e.Err.Error()})
		}
		errs.Render()
	}

	return nil
}
