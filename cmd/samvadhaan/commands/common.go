package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
	"github.com/mankudhanush/SAMVADHAANAI/internal/build"
	"github.com/mankudhanush/SAMVADHAANAI/internal/ledger"
)

// env is the per-invocation wiring shared by every command: logger, backend
// client, and request ledger.
type env struct {
	log    *slog.Logger
	client *api.Client
	ledger *ledger.Ledger

	closer io.Closer
}

// newEnv builds the command environment from the persistent flags.
func newEnv() (*env, error) {
	log, closer, err := build.SetupLogging(logDir, logLevel)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	cfg := api.DefaultConfig()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &env{
		log:    log,
		client: api.NewClient(cfg, log),
		ledger: ledger.New(ledger.DefaultConfig(), log),
		closer: closer,
	}, nil
}

// close flushes the log file stream.
func (e *env) close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

// backendBaseURL returns the effective backend origin, for resolving
// relative resource paths.
func backendBaseURL() string {
	if baseURL != "" {
		return baseURL
	}

	return api.DefaultBaseURL
}

// outputJSON prints v as indented JSON on stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
