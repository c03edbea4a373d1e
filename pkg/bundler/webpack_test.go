package bundler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebpack_Build(t *testing.T) {
	t.Parallel()

	t.Run("should append extra rules after project rules", func(t *testing.T) {
		t.Parallel()

		// Given
		opts := DefaultOptions("/project/src")
		opts.ExtraRules = []Rule{CoverageRule("/project/src")}

		// When
		cfg, err := Webpack{}.Build(opts)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "development", cfg["mode"])
		assert.Equal(t, DefaultDevtool, cfg["devtool"])

		rules := cfg["module"].(map[string]any)["rules"].([]any)
		require.Len(t, rules, 2)
		assert.Equal(t, "babel-loader", rules[0].(map[string]any)["loader"])

		coverage := rules[1].(map[string]any)
		assert.Equal(t, "istanbul-instrumenter-loader", coverage["loader"])
		assert.Equal(t, EnforcePost, coverage["enforce"])
		assert.Equal(t, []string{"/project/src"}, coverage["include"])
		assert.Equal(t, map[string]any{"esModules": true}, coverage["options"])

		assert.Equal(t, map[string]any{
			"extensions": []string{".js", ".jsx", ".json"},
			"modules":    []string{"/project/src", "node_modules"},
		}, cfg["resolve"])
	})

	t.Run("should default devtool", func(t *testing.T) {
		t.Parallel()

		cfg, err := Webpack{}.Build(Options{})

		require.NoError(t, err)
		assert.Equal(t, DefaultDevtool, cfg["devtool"])
		assert.Empty(t, cfg["module"].(map[string]any)["rules"])
	})

	t.Run("should not share slices with options", func(t *testing.T) {
		t.Parallel()

		// Given
		opts := DefaultOptions("src")

		// When
		cfg, err := Webpack{}.Build(opts)
		require.NoError(t, err)
		opts.Resolve.Modules[0] = "mutated"

		// Then
		assert.Equal(t, []string{"src", "node_modules"}, cfg["resolve"].(map[string]any)["modules"])
	})
}

func TestRule_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{name: "coverage rule", rule: CoverageRule("src")},
		{name: "missing loader", rule: Rule{Test: ScriptPattern}, wantErr: true},
		{name: "missing test", rule: Rule{Loader: "babel-loader"}, wantErr: true},
		{name: "bad regexp", rule: Rule{Test: `\.(js$`, Loader: "babel-loader"}, wantErr: true},
		{name: "bad enforce", rule: Rule{Test: ScriptPattern, Loader: "babel-loader", Enforce: "later"}, wantErr: true},
		{name: "pre enforce", rule: Rule{Test: ScriptPattern, Loader: "eslint-loader", Enforce: EnforcePre}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.rule.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWebpack_Build_BadExtraRule(t *testing.T) {
	t.Parallel()

	// Given
	opts := DefaultOptions("src")
	opts.ExtraRules = []Rule{{Test: "(", Loader: "x-loader"}}

	// When
	_, err := Webpack{}.Build(opts)

	// Then
	require.ErrorIs(t, err, ErrBadRule)
	assert.Contains(t, err.Error(), "rule 1")
}
