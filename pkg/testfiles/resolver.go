// Package testfiles resolves test-file globs against a working directory.
package testfiles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DefaultPattern is used when no test glob is configured.
const DefaultPattern = "tests/**/*-test.js"

// ErrBadPattern is returned for globs doublestar cannot parse.
var ErrBadPattern = errors.New("testfiles: bad pattern")

// Resolver anchors relative globs at a working directory.
type Resolver struct {
	workDir string
}

// NewResolver creates a resolver rooted at workDir. An empty workDir means ".".
func NewResolver(workDir string) *Resolver {
	if workDir == "" {
		workDir = "."
	}
	return &Resolver{workDir: filepath.Clean(workDir)}
}

// WorkDir returns the directory relative globs are resolved against.
func (r *Resolver) WorkDir() string {
	return r.workDir
}

// Resolve validates pattern and anchors it at the working directory.
// Absolute patterns are only cleaned. An empty pattern resolves DefaultPattern.
func (r *Resolver) Resolve(pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return "", fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	if filepath.IsAbs(pattern) {
		return filepath.Clean(pattern), nil
	}
	return filepath.Join(r.workDir, pattern), nil
}

// Expand resolves every pattern and returns the matching files, sorted and
// without duplicates. Patterns are globbed concurrently.
func (r *Resolver) Expand(ctx context.Context, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	resolved := make([]string, len(patterns))
	for i, p := range patterns {
		abs, err := r.Resolve(p)
		if err != nil {
			return nil, err
		}
		resolved[i] = abs
	}

	var (
		mu    sync.Mutex
		seen  = make(map[string]struct{})
		files []string
	)

	g, gCtx := errgroup.WithContext(ctx)
	for _, pattern := range resolved {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			matches, err := glob(pattern)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, m := range matches {
				if _, dup := seen[m]; dup {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func glob(pattern string) ([]string, error) {
	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	if _, err := os.Stat(base); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("testfiles: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(base), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("testfiles: glob %s: %w", pattern, err)
	}

	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	return files, nil
}
