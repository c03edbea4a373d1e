package plugin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSpec_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	// Given
	src := []byte(`
- mocha
- framework:chai: karma-chai
- preprocessor:webpack: {module: karma-webpack}
  framework:webpack: karma-webpack
- {}
`)

	// When
	var specs []Spec
	err := yaml.Unmarshal(src, &specs)

	// Then
	require.NoError(t, err)
	require.Len(t, specs, 4)

	name, ok := specs[0].Name()
	assert.True(t, ok)
	assert.Equal(t, "mocha", name)

	d, ok := specs[1].Descriptor()
	require.True(t, ok)
	assert.Equal(t, Descriptor{Provide("framework:chai", "karma-chai")}, d)

	d, ok = specs[2].Descriptor()
	require.True(t, ok)
	assert.Equal(t, []ID{"preprocessor:webpack", "framework:webpack"}, d.IDs())
	assert.Equal(t, map[string]any{"module": "karma-webpack"}, d[0].Provider)

	d, ok = specs[3].Descriptor()
	require.True(t, ok)
	assert.Empty(t, d)
}

func TestSpec_UnmarshalYAML_RejectsSequence(t *testing.T) {
	t.Parallel()

	var specs []Spec
	err := yaml.Unmarshal([]byte("- [a, b]\n"), &specs)

	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestSpec_MarshalYAML(t *testing.T) {
	t.Parallel()

	// Given
	specs := []Spec{
		Name("dots"),
		Plugin(
			Provide("reporter:coverage", Module("karma-coverage")),
			Provide("preprocessor:coverage", Module("karma-coverage")),
		),
	}

	// When
	out, err := yaml.Marshal(specs)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "- dots\n- reporter:coverage: karma-coverage\n  preprocessor:coverage: karma-coverage\n", string(out))
}

func TestSpec_JSON(t *testing.T) {
	t.Parallel()

	t.Run("should keep descriptor key order", func(t *testing.T) {
		t.Parallel()

		// Given
		spec := Plugin(
			Provide("preprocessor:webpack", Module("karma-webpack")),
			Provide("framework:webpack", Module("karma-webpack")),
		)

		// When
		out, err := json.Marshal([]Spec{Name("mocha"), spec})

		// Then
		require.NoError(t, err)
		assert.Equal(t, `["mocha",{"preprocessor:webpack":"karma-webpack","framework:webpack":"karma-webpack"}]`, string(out))
	})

	t.Run("should decode names and ordered descriptors", func(t *testing.T) {
		t.Parallel()

		// Given
		src := `["jasmine", {"reporter:b": 1, "reporter:a": {"x": true}}, {}]`

		// When
		var specs []Spec
		err := json.Unmarshal([]byte(src), &specs)

		// Then
		require.NoError(t, err)
		require.Len(t, specs, 3)
		assert.True(t, specs[0].IsName())

		d, _ := specs[1].Descriptor()
		assert.Equal(t, []ID{"reporter:b", "reporter:a"}, d.IDs())
		assert.Equal(t, float64(1), d[0].Provider)

		assert.True(t, specs[2].IsDescriptor())
	})

	t.Run("should reject numbers", func(t *testing.T) {
		t.Parallel()

		var spec Spec
		err := json.Unmarshal([]byte(`42`), &spec)

		assert.ErrorIs(t, err, ErrInvalidSpec)
	})

	t.Run("should refuse to encode zero value", func(t *testing.T) {
		t.Parallel()

		_, err := json.Marshal(Spec{})

		assert.ErrorIs(t, err, ErrInvalidSpec)
	})
}
