// Package bundler builds the webpack configuration handed to the test
// runner's bundler integration.
package bundler

import (
	"fmt"
	"path/filepath"
)

// DefaultDevtool inlines source maps so the sourcemap preprocessor can map stack traces.
const DefaultDevtool = "inline-source-map"

// Config is an opaque bundler configuration.
type Config map[string]any

// Builder turns Options into a bundler configuration.
type Builder interface {
	Build(opts Options) (Config, error)
}

// Options configures a bundler build.
type Options struct {
	// Devtool selects the source map style.
	Devtool string
	// Rules are the project's own loader rules.
	Rules []Rule
	// ExtraRules are appended after Rules (coverage instrumentation and similar).
	ExtraRules []Rule
	// Resolve controls module resolution.
	Resolve Resolve
	// Server configures the development middleware.
	Server Server
}

// Resolve configures module resolution.
type Resolve struct {
	Extensions []string
	Modules    []string
}

// Server configures the bundler's development middleware.
type Server struct {
	Stats  string
	NoInfo bool
}

// DefaultOptions returns the options used when composing a runner config for
// a project whose sources live in sourceDir.
func DefaultOptions(sourceDir string) Options {
	return Options{
		Devtool: DefaultDevtool,
		Rules: []Rule{
			{
				Test:    ScriptPattern,
				Exclude: []string{"node_modules"},
				Loader:  "babel-loader",
			},
		},
		Resolve: Resolve{
			Extensions: []string{".js", ".jsx", ".json"},
			Modules:    []string{filepath.Clean(sourceDir), "node_modules"},
		},
		Server: Server{
			Stats:  "errors-only",
			NoInfo: true,
		},
	}
}

// Webpack is the default Builder.
type Webpack struct{}

var _ Builder = Webpack{}

// Build validates every rule and returns the webpack configuration.
func (Webpack) Build(opts Options) (Config, error) {
	devtool := opts.Devtool
	if devtool == "" {
		devtool = DefaultDevtool
	}

	rules := make([]any, 0, len(opts.Rules)+len(opts.ExtraRules))
	for i, r := range append(append([]Rule(nil), opts.Rules...), opts.ExtraRules...) {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r.toMap())
	}

	resolve := map[string]any{}
	if len(opts.Resolve.Extensions) > 0 {
		resolve["extensions"] = append([]string(nil), opts.Resolve.Extensions...)
	}
	if len(opts.Resolve.Modules) > 0 {
		resolve["modules"] = append([]string(nil), opts.Resolve.Modules...)
	}

	return Config{
		"mode":    "development",
		"devtool": devtool,
		"module": map[string]any{
			"rules": rules,
		},
		"resolve": resolve,
		"devServer": map[string]any{
			"stats":  opts.Server.Stats,
			"noInfo": opts.Server.NoInfo,
		},
	}, nil
}
