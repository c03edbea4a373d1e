package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/testrig/pkg/plugin"
)

const sampleConfig = `features:
  codeCoverage: true
log:
  level: debug
  format: json
karma:
  frameworks:
    - mocha
    - framework:chai: karma-chai
      framework:chai-dom: karma-chai
  reporters: [progress]
  plugins: [karma-chai]
  tests: "spec/**/*.spec.js"
  extra:
    browsers: [Firefox]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should load defaults without a file", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load("")

		require.NoError(t, err)
		assert.False(t, cfg.Features.CodeCoverage)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Empty(t, cfg.Karma.Frameworks)
		assert.Empty(t, cfg.Karma.Tests)
	})

	t.Run("should load every section", func(t *testing.T) {
		t.Parallel()

		// Given
		path := writeFile(t, t.TempDir(), "testrig.yaml", sampleConfig)

		// When
		cfg, err := Load(path)

		// Then
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Path)
		assert.True(t, cfg.Features.CodeCoverage)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "spec/**/*.spec.js", cfg.Karma.Tests)
		assert.Equal(t, plugin.Names("progress"), cfg.Karma.Reporters)
		assert.Equal(t, plugin.Names("karma-chai"), cfg.Karma.Plugins)
		assert.Equal(t, map[string]any{"browsers": []any{"Firefox"}}, cfg.Karma.Extra)

		require.Len(t, cfg.Karma.Frameworks, 2)
		assert.Equal(t, plugin.Name("mocha"), cfg.Karma.Frameworks[0])
		d, ok := cfg.Karma.Frameworks[1].Descriptor()
		require.True(t, ok)
		assert.Equal(t, []plugin.ID{"framework:chai", "framework:chai-dom"}, d.IDs())
	})

	t.Run("should return ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should reject malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "testrig.yaml", "karma: [unclosed\n")

		_, err := Load(path)

		assert.Error(t, err)
	})

	t.Run("should reject invalid plugin entry", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "testrig.yaml", "karma:\n  frameworks:\n    - [nested]\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, plugin.ErrInvalidSpec)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Given
	path := writeFile(t, t.TempDir(), "testrig.yaml", sampleConfig)
	t.Setenv("TESTRIG_CODE_COVERAGE", "false")
	t.Setenv("TESTRIG_TESTS", "other/**/*.js")
	t.Setenv("TESTRIG_LOG_LEVEL", "warn")
	t.Setenv("TESTRIG_UNRELATED", "ignored")

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.False(t, cfg.Features.CodeCoverage)
	assert.Equal(t, "other/**/*.js", cfg.Karma.Tests)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidCoverageEnv(t *testing.T) {
	// Given
	t.Setenv("TESTRIG_CODE_COVERAGE", "sometimes")

	// When
	_, err := Load("")

	// Then
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorContains(t, err, "sometimes")
}

func TestLoad_CoverageEnvParsesBool(t *testing.T) {
	t.Setenv("TESTRIG_CODE_COVERAGE", "1")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.True(t, cfg.Features.CodeCoverage)
}

func TestLoad_InvalidCoverageInFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "testrig.yaml", "features:\n  codeCoverage: [yes]\n")

	_, err := Load(path)

	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	// Given
	root := t.TempDir()
	writeFile(t, root, "package.json", "{}")
	writeFile(t, root, ".testrig.yml", "features:\n  codeCoverage: true\n")
	nested := filepath.Join(root, "packages", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	// When
	cfg, err := Discover(NewResolver(NewCache(), 0), nested)

	// Then
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".testrig.yml"), cfg.Path)
	assert.True(t, cfg.Features.CodeCoverage)
}
