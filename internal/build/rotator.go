package build

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

const (
	// DefaultMaxLogFiles is the default maximum number of rotated log
	// files to keep on disk.
	DefaultMaxLogFiles = 5

	// DefaultMaxLogFileSize is the default maximum log file size in MB
	// before rotation occurs.
	DefaultMaxLogFileSize = 10

	// DefaultLogFilename is the log file name used when no custom name
	// is provided.
	DefaultLogFilename = "samvadhaan.log"
)

// RotatorConfig holds the configuration for the log file rotator.
type RotatorConfig struct {
	// LogDir is the directory where log files are written.
	LogDir string

	// MaxLogFiles is the maximum number of rotated log files to keep.
	// Zero disables rotation (single file, unbounded growth).
	MaxLogFiles int

	// MaxLogFileSize is the maximum size of a log file in megabytes
	// before it is rotated.
	MaxLogFileSize int

	// Filename overrides the default log file name.
	Filename string
}

// DefaultRotatorConfig returns a RotatorConfig with sane defaults for the
// given directory.
func DefaultRotatorConfig(logDir string) *RotatorConfig {
	return &RotatorConfig{
		LogDir:         logDir,
		MaxLogFiles:    DefaultMaxLogFiles,
		MaxLogFileSize: DefaultMaxLogFileSize,
		Filename:       DefaultLogFilename,
	}
}

// RotatingLogWriter exposes a jrick/logrotate rotator as an io.Writer via a
// pipe. Rotated files are gzip compressed.
type RotatingLogWriter struct {
	pipe    *io.PipeWriter
	rotator *rotator.Rotator
}

// NewRotatingLogWriter creates the log directory if needed, configures the
// rotator, and starts its background goroutine.
func NewRotatingLogWriter(cfg *RotatorConfig) (*RotatingLogWriter, error) {
	filename := cfg.Filename
	if filename == "" {
		filename = DefaultLogFilename
	}

	logFile := filepath.Join(cfg.LogDir, filename)
	if err := os.MkdirAll(filepath.Dir(logFile), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	// The rotator takes its threshold in kilobytes.
	rot, err := rotator.New(
		logFile,
		int64(cfg.MaxLogFileSize*1024),
		false,
		cfg.MaxLogFiles,
	)
	if err != nil {
		return nil, fmt.Errorf("create file rotator: %w", err)
	}

	rot.SetCompressor(gzip.NewWriter(nil), ".gz")

	// Feed the rotator through a pipe so Write never blocks on disk
	// rotation. Errors go to stderr since the rotator itself is the log
	// destination.
	pr, pw := io.Pipe()
	go func() {
		if err := rot.Run(pr); err != nil {
			fmt.Fprintf(
				os.Stderr, "log rotator stopped: %v\n", err,
			)
		}
	}()

	return &RotatingLogWriter{pipe: pw, rotator: rot}, nil
}

// Write writes the byte slice to the rotator pipe.
func (r *RotatingLogWriter) Write(b []byte) (int, error) {
	return r.pipe.Write(b)
}

// Close closes the pipe writer, signalling the rotator goroutine to flush
// and exit.
func (r *RotatingLogWriter) Close() error {
	return r.pipe.Close()
}
