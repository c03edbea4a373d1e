package compose

import (
	"context"

	"github.com/specvital/testrig/pkg/bundler"
	"github.com/specvital/testrig/pkg/logging"
	"github.com/specvital/testrig/pkg/merge"
	"github.com/specvital/testrig/pkg/plugin/builtin"
)

// Result is a complete runner configuration.
type Result struct {
	// Bundle is the reconciled plugin and name configuration.
	Bundle *Bundle `json:"bundle"`
	// Files is the resolved test-file glob.
	Files string `json:"files"`
	// Preprocessors maps the test glob to its preprocessors.
	Preprocessors map[string][]string `json:"preprocessors"`
	// Webpack is the bundler configuration.
	Webpack bundler.Config `json:"webpack"`
	// Runner is the final runner configuration, user extras merged in.
	Runner map[string]any `json:"runner"`
}

// Compose builds the Bundle and wraps it into a runner configuration:
// resolved test files, preprocessors, bundler config and the user's extra
// settings merged over the computed baseline.
func (c *Composer) Compose(features Features, user Karma) (*Result, error) {
	bundle, err := c.Bundle(features, user)
	if err != nil {
		return nil, err
	}

	files, err := c.resolver.Resolve(user.Tests)
	if err != nil {
		return nil, err
	}

	opts := bundler.DefaultOptions(c.sourceDir)
	opts.ExtraRules = bundle.ExtraLoaders
	webpack, err := c.bundler.Build(opts)
	if err != nil {
		return nil, err
	}

	preprocessors := map[string][]string{
		files: {builtin.NameWebpack, builtin.NameSourcemap},
	}

	runner := merge.Deep(c.runnerConfig(features, bundle, files, preprocessors, webpack), user.Extra)

	logging.Dump(context.Background(), c.options.Logger, "composed runner config", runner)

	return &Result{
		Bundle:        bundle,
		Files:         files,
		Preprocessors: preprocessors,
		Webpack:       webpack,
		Runner:        runner,
	}, nil
}

func (c *Composer) runnerConfig(features Features, bundle *Bundle, files string, preprocessors map[string][]string, webpack bundler.Config) map[string]any {
	pre := make(map[string]any, len(preprocessors))
	for pattern, names := range preprocessors {
		pre[pattern] = names
	}

	cfg := map[string]any{
		"basePath":   c.resolver.WorkDir(),
		"frameworks": bundle.Frameworks,
		"reporters":  bundle.Reporters,
		"plugins":    bundle.Plugins,
		"files": []any{
			map[string]any{"pattern": files, "watched": false},
		},
		"preprocessors": pre,
		"webpack":       map[string]any(webpack),
		"webpackMiddleware": map[string]any{
			"stats":  "errors-only",
			"noInfo": true,
		},
		"browsers":  []string{builtin.BrowserChromeHeadless},
		"singleRun": true,
		"autoWatch": false,
		"colors":    true,
	}

	if features.CodeCoverage {
		cfg["coverageReporter"] = map[string]any{
			"dir": "coverage",
			"reporters": []any{
				map[string]any{"type": "html", "subdir": "."},
				map[string]any{"type": "text-summary"},
			},
		}
	}

	return cfg
}
