package compose

import "github.com/specvital/testrig/pkg/plugin"

// Features are the feature flags that shape a composed configuration.
type Features struct {
	// CodeCoverage adds coverage instrumentation, the coverage reporter and its plugin.
	CodeCoverage bool `json:"codeCoverage" yaml:"codeCoverage"`
}

// Karma holds the user's runner overrides.
type Karma struct {
	// Frameworks replaces the default frameworks when non-empty.
	Frameworks []plugin.Spec `json:"frameworks,omitempty" yaml:"frameworks,omitempty"`
	// Reporters replaces the default reporters when non-empty.
	Reporters []plugin.Spec `json:"reporters,omitempty" yaml:"reporters,omitempty"`
	// Plugins are appended to the plugin list as given.
	Plugins []plugin.Spec `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	// Tests is the test-file glob; empty means testfiles.DefaultPattern.
	Tests string `json:"tests,omitempty" yaml:"tests,omitempty"`
	// Extra is deep-merged over the composed runner config; its leaves win.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}
