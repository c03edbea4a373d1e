package bundler

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBadRule is returned when a loader rule cannot be turned into bundler configuration.
var ErrBadRule = errors.New("bundler: bad loader rule")

// Enforce values for a Rule.
const (
	EnforcePre  = "pre"
	EnforcePost = "post"
)

// Script file extensions matched by the default and coverage rules.
const ScriptPattern = `\.jsx?$`

// Rule is a module loader rule.
type Rule struct {
	// Test is a regular expression matched against module paths.
	Test string `json:"test" yaml:"test"`
	// Include restricts the rule to these directories.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`
	// Exclude removes these path fragments from the rule.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// Loader is the loader module name.
	Loader string `json:"loader" yaml:"loader"`
	// Enforce orders the rule relative to normal loaders: "pre", "post" or empty.
	Enforce string `json:"enforce,omitempty" yaml:"enforce,omitempty"`
	// Options are passed to the loader unchanged.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Validate checks that r can be emitted.
func (r Rule) Validate() error {
	if r.Loader == "" {
		return fmt.Errorf("%w: missing loader", ErrBadRule)
	}
	if r.Test == "" {
		return fmt.Errorf("%w: %s: missing test pattern", ErrBadRule, r.Loader)
	}
	if _, err := regexp.Compile(r.Test); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadRule, r.Loader, err)
	}
	switch r.Enforce {
	case "", EnforcePre, EnforcePost:
	default:
		return fmt.Errorf("%w: %s: enforce %q", ErrBadRule, r.Loader, r.Enforce)
	}
	return nil
}

func (r Rule) toMap() map[string]any {
	m := map[string]any{
		"test":   r.Test,
		"loader": r.Loader,
	}
	if len(r.Include) > 0 {
		m["include"] = append([]string(nil), r.Include...)
	}
	if len(r.Exclude) > 0 {
		m["exclude"] = append([]string(nil), r.Exclude...)
	}
	if r.Enforce != "" {
		m["enforce"] = r.Enforce
	}
	if len(r.Options) > 0 {
		opts := make(map[string]any, len(r.Options))
		for k, v := range r.Options {
			opts[k] = v
		}
		m["options"] = opts
	}
	return m
}

// CoverageRule instruments scripts under sourceDir for coverage reporting.
// It runs after the other loaders so instrumentation sees transpiled code.
func CoverageRule(sourceDir string) Rule {
	return Rule{
		Test:    ScriptPattern,
		Include: []string{sourceDir},
		Exclude: []string{"node_modules"},
		Loader:  "istanbul-instrumenter-loader",
		Enforce: EnforcePost,
		Options: map[string]any{"esModules": true},
	}
}
