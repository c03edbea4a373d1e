// Package merge deep-merges runner configuration trees.
package merge

import (
	"github.com/knadh/koanf/maps"
)

// Deep returns base with overrides merged in. Nested map[string]any values
// are merged key by key; any other override value replaces the base value,
// so overrides win on conflicting leaves. Neither input is modified.
func Deep(base, overrides map[string]any) map[string]any {
	out := cloneTree(base)
	if len(overrides) == 0 {
		return out
	}
	maps.Merge(maps.Copy(overrides), out)
	return out
}

// cloneTree copies the map nodes of m. Leaf values are shared: Merge only
// reassigns map entries and never writes through a leaf.
func cloneTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if child, ok := v.(map[string]any); ok {
			out[k] = cloneTree(child)
			continue
		}
		out[k] = v
	}
	return out
}
