package compose

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specvital/testrig/pkg/bundler"
	"github.com/specvital/testrig/pkg/logging"
	"github.com/specvital/testrig/pkg/plugin"
	"github.com/specvital/testrig/pkg/plugin/builtin"
)

// DefaultSourceDir is the project source directory, relative to the working directory.
const DefaultSourceDir = "src"

// Options configures a Composer.
type Options struct {
	// Baseline lists the capability ids every bundle must start with.
	// Nil means builtin.Baseline().
	Baseline []plugin.ID

	// Bundler builds the webpack configuration. Nil means bundler.Webpack.
	Bundler bundler.Builder

	// Logger receives the debug dump of the composed runner config.
	// Nil discards output.
	Logger *slog.Logger

	// Registry provides baseline and implicit plugins. Nil means builtin.NewRegistry().
	Registry *plugin.Registry

	// SourceDir is the directory instrumented for coverage and used for
	// module resolution. Relative values are anchored at WorkDir.
	SourceDir string

	// WorkDir anchors test globs and relative paths. Empty means the process
	// working directory.
	WorkDir string
}

// Option is a functional option for configuring Composer.
type Option func(*Options)

// WithBaseline replaces the mandatory baseline plugin ids.
func WithBaseline(ids ...plugin.ID) Option {
	return func(o *Options) {
		o.Baseline = append([]plugin.ID{}, ids...)
	}
}

// WithBundler sets the bundler-config builder.
func WithBundler(b bundler.Builder) Option {
	return func(o *Options) {
		o.Bundler = b
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithRegistry sets the plugin registry.
func WithRegistry(r *plugin.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithSourceDir sets the project source directory.
func WithSourceDir(dir string) Option {
	return func(o *Options) {
		o.SourceDir = dir
	}
}

// WithWorkDir sets the working directory.
func WithWorkDir(dir string) Option {
	return func(o *Options) {
		o.WorkDir = dir
	}
}

func applyDefaults(opts *Options) {
	if opts.Baseline == nil {
		opts.Baseline = builtin.Baseline()
	}
	if opts.Bundler == nil {
		opts.Bundler = bundler.Webpack{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Registry == nil {
		opts.Registry = builtin.NewRegistry()
	}
	if opts.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.WorkDir = wd
		} else {
			opts.WorkDir = "."
		}
	}
	opts.WorkDir = filepath.Clean(opts.WorkDir)
	if opts.SourceDir == "" {
		opts.SourceDir = DefaultSourceDir
	}
	if !filepath.IsAbs(opts.SourceDir) {
		opts.SourceDir = filepath.Join(opts.WorkDir, opts.SourceDir)
	}
}
