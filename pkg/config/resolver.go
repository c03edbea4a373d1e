package config

import (
	"os"
	"path/filepath"
)

const defaultMaxDepth = 20

// FileNames are the config file names looked up in each directory, in order.
var FileNames = []string{"testrig.yaml", "testrig.yml", ".testrig.yaml", ".testrig.yml"}

var projectRootIndicators = []string{"package.json", ".git", "go.mod"}

// Resolver discovers the config file that applies to a directory.
type Resolver struct {
	cache    *Cache
	maxDepth int
}

// NewResolver creates a Resolver. cache may be nil; maxDepth <= 0 uses the default.
func NewResolver(cache *Cache, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Resolver{
		cache:    cache,
		maxDepth: maxDepth,
	}
}

// Resolve finds the nearest config file walking up from dir. The walk stops
// one level above the first project root (package.json, .git, go.mod).
func (r *Resolver) Resolve(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	var foundProjectRoot bool
	var visited []string

	for depth := 0; depth < r.maxDepth; depth++ {
		if r.cache != nil {
			if cached, ok := r.cache.Get(dir); ok {
				r.remember(visited, cached)
				return cached, cached != ""
			}
		}

		visited = append(visited, dir)

		if path, ok := findInDir(dir); ok {
			r.remember(visited, path)
			return path, true
		}

		if !foundProjectRoot && isProjectRoot(dir) {
			foundProjectRoot = true
		} else if foundProjectRoot {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	r.remember(visited, "")
	return "", false
}

func (r *Resolver) remember(dirs []string, path string) {
	if r.cache == nil {
		return
	}
	for _, d := range dirs {
		r.cache.Set(d, path)
	}
}

func findInDir(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func isProjectRoot(dir string) bool {
	for _, file := range projectRootIndicators {
		if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
			return true
		}
	}
	return false
}
