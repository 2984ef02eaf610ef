// Package commands implements the samvadhaan CLI: a terminal client for
// the SAMVADHAAN legal-document assistant backend.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// baseURL is the backend origin.
	baseURL string

	// logDir is the directory for the rotating log file; empty logs to
	// stderr only.
	logDir string

	// logLevel is the minimum log level (trace, debug, info, warn,
	// error).
	logLevel string

	// jsonOutput switches command output to JSON.
	jsonOutput bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "samvadhaan",
	Short: "SAMVADHAAN legal assistant CLI",
	Long: `samvadhaan is a terminal client for the SAMVADHAAN legal-document
assistant. Upload documents, ask questions against them, get plain-language
simplifications, translate answers into Indian languages, and play them back
as speech.`,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseURL, "base-url", "",
		"Backend base URL (default: http://localhost:8000)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logDir, "log-dir", "",
		"Directory for the rotating log file (default: stderr only)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info",
		"Log level: trace, debug, info, warn, error",
	)
	rootCmd.PersistentFlags().BoolVar(
		&jsonOutput, "json", false,
		"Emit JSON instead of text output",
	)

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lawyersCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(versionCmd)
}
