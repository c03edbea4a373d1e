package inventory

import (
	"log/slog"
	"time"
)

const (
	// DefaultWorkers indicates that Scan should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default scan timeout duration.
	DefaultTimeout = 2 * time.Minute
	// MaxWorkers is the maximum number of concurrent parsers allowed.
	MaxWorkers = 256
	// DefaultMaxFileSize is the default maximum test file size (2MB).
	DefaultMaxFileSize = 2 * 1024 * 1024
)

// ScanOptions configures Scan.
type ScanOptions struct {
	// Logger receives per-file debug output. Nil discards.
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to parse.
	// Larger files are reported as errors.
	MaxFileSize int64

	// Pattern is recorded on the resulting inventory.
	Pattern string

	// Timeout bounds the whole scan. Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of concurrent file parsers.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// ScanOption is a functional option for Scan.
type ScanOption func(*ScanOptions)

// WithWorkers sets the number of concurrent file parsers.
// Negative values are ignored.
func WithWorkers(n int) ScanOption {
	return func(o *ScanOptions) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the scan timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithMaxFileSize sets the largest file Scan will parse.
func WithMaxFileSize(n int64) ScanOption {
	return func(o *ScanOptions) {
		if n > 0 {
			o.MaxFileSize = n
		}
	}
}

// WithPattern records the glob the files were resolved from.
func WithPattern(pattern string) ScanOption {
	return func(o *ScanOptions) {
		o.Pattern = pattern
	}
}

func WithLogger(logger *slog.Logger) ScanOption {
	return func(o *ScanOptions) {
		o.Logger = logger
	}
}
