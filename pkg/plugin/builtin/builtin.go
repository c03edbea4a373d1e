// Package builtin provides the plugins the composer always knows about:
// the bundler integration, source-map support, the headless browser
// launcher, mocha's framework and reporter, and coverage.
//
// Descriptors are built by factories on every request, so callers may hold
// and modify what they receive.
package builtin

import (
	"github.com/specvital/testrig/pkg/plugin"
)

// Capability names used by the composer.
const (
	NameCoverage  = "coverage"
	NameDots      = "dots"
	NameMocha     = "mocha"
	NameSourcemap = "sourcemap"
	NameWebpack   = "webpack"

	// BrowserChromeHeadless is the launcher name handed to the runner's browsers list.
	BrowserChromeHeadless = "ChromeHeadless"
)

// Capability ids of the built-in descriptors. Each is the identity (first
// entry) of its descriptor.
var (
	Webpack        = plugin.NewID(plugin.KindFramework, NameWebpack)
	Sourcemap      = plugin.NewID(plugin.KindPreprocessor, NameSourcemap)
	ChromeLauncher = plugin.NewID(plugin.KindLauncher, BrowserChromeHeadless)
	MochaFramework = plugin.NewID(plugin.KindFramework, NameMocha)
	MochaReporter  = plugin.NewID(plugin.KindReporter, NameMocha)
	Coverage       = plugin.NewID(plugin.KindReporter, NameCoverage)
)

// Baseline lists the plugins every composed configuration carries, in order.
func Baseline() []plugin.ID {
	return []plugin.ID{Webpack, Sourcemap, ChromeLauncher}
}

// npm modules providing the built-in capabilities.
const (
	moduleChromeLauncher = plugin.Module("karma-chrome-launcher")
	moduleCoverage       = plugin.Module("karma-coverage")
	moduleMocha          = plugin.Module("karma-mocha")
	moduleMochaReporter  = plugin.Module("karma-mocha-reporter")
	moduleSourcemap      = plugin.Module("karma-sourcemap-loader")
	moduleWebpack        = plugin.Module("karma-webpack")
)

var registrations = []plugin.Registration{
	{
		ID: Webpack,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{
				plugin.Provide(Webpack, moduleWebpack),
				plugin.Provide(plugin.NewID(plugin.KindPreprocessor, NameWebpack), moduleWebpack),
			}
		},
	},
	{
		ID: Sourcemap,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{plugin.Provide(Sourcemap, moduleSourcemap)}
		},
	},
	{
		ID: ChromeLauncher,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{
				plugin.Provide(ChromeLauncher, moduleChromeLauncher),
				plugin.Provide(plugin.NewID(plugin.KindLauncher, "Chrome"), moduleChromeLauncher),
			}
		},
	},
	{
		ID: MochaFramework,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{plugin.Provide(MochaFramework, moduleMocha)}
		},
	},
	{
		ID: MochaReporter,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{plugin.Provide(MochaReporter, moduleMochaReporter)}
		},
	},
	{
		ID: Coverage,
		New: func() plugin.Descriptor {
			return plugin.Descriptor{
				plugin.Provide(Coverage, moduleCoverage),
				plugin.Provide(plugin.NewID(plugin.KindPreprocessor, NameCoverage), moduleCoverage),
			}
		},
	},
}

// NewRegistry returns a registry populated with every built-in plugin.
func NewRegistry() *plugin.Registry {
	r := plugin.NewRegistry()
	Register(r)
	return r
}

// Register adds every built-in plugin to r.
func Register(r *plugin.Registry) {
	for _, reg := range registrations {
		r.Register(reg)
	}
}
