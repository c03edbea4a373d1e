// Package compose assembles a test-runner configuration from user overrides
// and built-in defaults.
//
// The composer reconciles the user's frameworks and reporters (bare names or
// plugin descriptors) against a mandatory baseline plugin set, adds the
// plugins implied by the chosen names, and optionally wires coverage
// instrumentation. It never runs tests.
package compose

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specvital/testrig/pkg/bundler"
	"github.com/specvital/testrig/pkg/plugin"
	"github.com/specvital/testrig/pkg/plugin/builtin"
	"github.com/specvital/testrig/pkg/testfiles"
)

// ErrMissingBaseline is returned when a mandatory baseline plugin cannot be instantiated.
var ErrMissingBaseline = errors.New("compose: missing baseline plugin")

// Bundle is the reconciled plugin and name configuration.
type Bundle struct {
	// Plugins holds baseline, user and implied plugins without duplicate implied ids.
	Plugins []plugin.Spec `json:"plugins" yaml:"plugins"`
	// Frameworks is never empty.
	Frameworks []string `json:"frameworks" yaml:"frameworks"`
	// Reporters is never empty.
	Reporters []string `json:"reporters" yaml:"reporters"`
	// ExtraLoaders are appended to the bundler's loader rules.
	ExtraLoaders []bundler.Rule `json:"extraLoaders" yaml:"extraLoaders"`
}

// Composer builds runner configurations. It holds no per-call state and is
// safe for concurrent use.
type Composer struct {
	baseline  []plugin.ID
	bundler   bundler.Builder
	options   *Options
	registry  *plugin.Registry
	resolver  *testfiles.Resolver
	sourceDir string
}

// New creates a Composer with the given options.
func New(opts ...Option) *Composer {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Composer{
		baseline:  options.Baseline,
		bundler:   options.Bundler,
		options:   options,
		registry:  options.Registry,
		resolver:  testfiles.NewResolver(options.WorkDir),
		sourceDir: options.SourceDir,
	}
}

// Bundle reconciles features and user overrides into a Bundle.
//
// Name lists are replaced by user input while plugin lists accumulate:
// baseline first, then descriptors found among user frameworks and reporters,
// then user plugins verbatim, then the implied mocha plugins when their id is
// not yet present, then coverage.
func (c *Composer) Bundle(features Features, user Karma) (*Bundle, error) {
	plugins, err := c.baselinePlugins()
	if err != nil {
		return nil, err
	}

	userFrameworks := len(user.Frameworks) > 0
	userReporters := len(user.Reporters) > 0
	frameworks, reporters := defaultNames(userFrameworks, userReporters)

	if userFrameworks {
		set, err := plugin.Classify(plugin.Frameworks, user.Frameworks)
		if err != nil {
			return nil, err
		}
		frameworks = set.Names
		plugins = append(plugins, set.Plugins...)
	}

	if userReporters {
		set, err := plugin.Classify(plugin.Reporters, user.Reporters)
		if err != nil {
			return nil, err
		}
		reporters = set.Names
		plugins = append(plugins, set.Plugins...)
	}

	plugins = append(plugins, user.Plugins...)

	if plugins, err = c.ensure(plugins, frameworks, builtin.MochaFramework); err != nil {
		return nil, err
	}
	if plugins, err = c.ensure(plugins, reporters, builtin.MochaReporter); err != nil {
		return nil, err
	}

	extraLoaders := []bundler.Rule{}
	if features.CodeCoverage {
		extraLoaders = append(extraLoaders, bundler.CoverageRule(c.sourceDir))
		reporters = append(reporters, builtin.NameCoverage)
		if plugins, err = c.ensure(plugins, reporters, builtin.Coverage); err != nil {
			return nil, err
		}
	}

	return &Bundle{
		Plugins:      plugins,
		Frameworks:   frameworks,
		Reporters:    reporters,
		ExtraLoaders: extraLoaders,
	}, nil
}

func (c *Composer) baselinePlugins() ([]plugin.Spec, error) {
	plugins := make([]plugin.Spec, 0, len(c.baseline)+4)
	for _, id := range c.baseline {
		spec, err := c.registry.Spec(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingBaseline, err)
		}
		plugins = append(plugins, spec)
	}
	return plugins, nil
}

// ensure appends the registered plugin for id when names selects it and no
// descriptor with that identity is present yet.
func (c *Composer) ensure(plugins []plugin.Spec, names []string, id plugin.ID) ([]plugin.Spec, error) {
	if !slices.Contains(names, id.Name()) || plugin.Contains(plugins, id) {
		return plugins, nil
	}
	spec, err := c.registry.Spec(id)
	if err != nil {
		return nil, fmt.Errorf("compose: implied plugin: %w", err)
	}
	return append(plugins, spec), nil
}
