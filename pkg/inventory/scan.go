// Package inventory lists the suites and tests declared in the files a
// runner configuration selects, using tree-sitter to read mocha-style
// JavaScript and TypeScript without executing it.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/testrig/pkg/domain"
	"github.com/specvital/testrig/pkg/logging"
)

var (
	// ErrUnsupportedFile is returned for files with no known grammar.
	ErrUnsupportedFile = errors.New("inventory: unsupported file type")
	// ErrFileTooLarge is returned for files above the size limit.
	ErrFileTooLarge = errors.New("inventory: file too large")
	// ErrScanTimeout is returned when scanning exceeds the timeout duration.
	ErrScanTimeout = errors.New("inventory: scan timeout")
)

// FileError is a non-fatal failure to inventory one file.
type FileError struct {
	Err  error
	Path string
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result is the outcome of Scan.
type Result struct {
	// Errors are per-file failures, sorted by path.
	Errors []FileError
	// Inventory holds every file parsed successfully.
	Inventory domain.Inventory
}

// Scan parses files concurrently and returns their suites and tests.
// Per-file failures are collected in Result.Errors; only cancellation and
// timeout fail the scan.
func Scan(ctx context.Context, files []string, opts ...ScanOption) (*Result, error) {
	options := &ScanOptions{
		MaxFileSize: DefaultMaxFileSize,
		Timeout:     DefaultTimeout,
		Workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.Logger == nil {
		options.Logger = logging.Discard()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(timeoutCtx)

	var (
		mu        sync.Mutex
		testFiles = make([]domain.TestFile, 0, len(files))
		errs      []FileError
	)

	for _, path := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			file, err := scanFile(gCtx, path, options.MaxFileSize)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				options.Logger.DebugContext(gCtx, "inventory failed", slog.String("path", path), slog.Any("error", err))
				errs = append(errs, FileError{Err: err, Path: path})
				return nil
			}

			options.Logger.DebugContext(gCtx, "inventoried file",
				slog.String("path", path),
				slog.Int("suites", file.CountSuites()),
				slog.Int("tests", file.CountTests()),
			)
			testFiles = append(testFiles, *file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrScanTimeout
		}
		return nil, err
	}

	sort.Slice(testFiles, func(i, j int) bool {
		return testFiles[i].Path < testFiles[j].Path
	})
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Path < errs[j].Path
	})

	return &Result{
		Errors: errs,
		Inventory: domain.Inventory{
			Files:   testFiles,
			Pattern: options.Pattern,
		},
	}, nil
}

// ScanFile parses a single file.
func ScanFile(ctx context.Context, path string) (*domain.TestFile, error) {
	return scanFile(ctx, path, DefaultMaxFileSize)
}

// ParseSource extracts suites and tests from source as if read from path.
func ParseSource(ctx context.Context, path string, source []byte) (*domain.TestFile, error) {
	lang, ok := domain.LanguageFromPath(path)
	if !ok {
		return nil, ErrUnsupportedFile
	}

	tree, err := parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return extract(tree.RootNode(), source, path, lang), nil
}

func scanFile(ctx context.Context, path string, maxSize int64) (*domain.TestFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := domain.LanguageFromPath(path); !ok {
		return nil, ErrUnsupportedFile
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(ctx, path, source)
}
