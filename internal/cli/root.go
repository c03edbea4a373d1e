// Package cli implements the testrig command line.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/specvital/testrig/pkg/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Dir        string
	Format     string // "json" | "yaml" | "text"
	Verbose    bool

	resolver *config.Resolver
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the testrig CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{
		resolver: config.NewResolver(config.NewCache(), 0),
	}

	cmd := &cobra.Command{
		Use:   "testrig",
		Short: "Compose karma test-runner configuration",
		Long: `testrig assembles a karma configuration driven by webpack from a small
testrig.yaml: frameworks, reporters, plugins and coverage instrumentation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: nearest testrig.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Dir, "dir", "C", "", "project directory (default: current directory)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(NewComposeCommand(opts))
	cmd.AddCommand(NewInventoryCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

func (o *RootOptions) workDir() (string, error) {
	if o.Dir != "" {
		return o.Dir, nil
	}
	return os.Getwd()
}

// loadConfig reads the explicit config file or discovers the nearest one.
func (o *RootOptions) loadConfig(dir string) (*config.Config, error) {
	if o.ConfigPath != "" {
		return config.Load(o.ConfigPath)
	}
	if o.resolver == nil {
		o.resolver = config.NewResolver(config.NewCache(), 0)
	}
	return config.Discover(o.resolver, dir)
}
