package build

import (
	"io"
	"log/slog"
	"os"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
)

// SetupLogging constructs the process logger: records go to stderr and, when
// logDir is non-empty, to a gzip-rotated file under logDir. The returned
// closer flushes the file stream and must be called on shutdown.
func SetupLogging(logDir, level string) (*slog.Logger, io.Closer, error) {
	handlers := []btclogv2.Handler{
		btclogv2.NewDefaultHandler(os.Stderr),
	}

	var closer io.Closer
	if logDir != "" {
		writer, err := NewRotatingLogWriter(
			DefaultRotatorConfig(logDir),
		)
		if err != nil {
			return nil, nil, err
		}

		handlers = append(
			handlers, btclogv2.NewDefaultHandler(writer),
		)
		closer = writer
	}

	set := NewHandlerSet(handlers...)

	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		lvl = btclog.LevelInfo
	}
	set.SetLevel(lvl)

	return slog.New(set), closer, nil
}
