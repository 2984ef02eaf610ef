package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
	"github.com/mankudhanush/SAMVADHAANAI/internal/report"
	"github.com/mankudhanush/SAMVADHAANAI/internal/speak"
	"github.com/mankudhanush/SAMVADHAANAI/internal/upload"
)

var (
	uploadLang   string
	uploadReport string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document and simplify it",
	Long: `Upload a legal document for extraction and indexing, then request a
plain-language simplification. A simplification failure does not undo a
confirmed upload; the document stays queryable.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(
		&uploadLang, "lang", "",
		"Target language for the simplification (e.g. hindi)",
	)
	uploadCmd.Flags().StringVar(
		&uploadReport, "report", "",
		"Write an HTML report of the simplification to this path",
	)
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer file.Close()

	player := speak.NewExecPlayer("", backendBaseURL(), e.log)
	coordinator := speak.NewCoordinator(e.client, player, e.log)

	controller := upload.NewController(upload.Config{
		TargetLanguage: uploadLang,
		Classifier:     upload.NewClassifier(nil),
	}, e.client, e.log, coordinator.Reset)

	err = controller.Submit(ctx, filepath.Base(path), file)
	session := controller.Session()

	// The upload itself failing is terminal.
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	// Cached simplifications for this document are now stale.
	e.ledger.Invalidate("simplify")

	if jsonOutput {
		return outputJSON(session)
	}

	meta := session.DocumentMeta
	fmt.Printf("Uploaded %s: %d pages, %d chunks, %d vectors total\n",
		meta.Filename, meta.Pages, meta.NumChunks,
		session.TotalVectors)

	session.PracticeArea.WhenSome(func(area string) {
		fmt.Printf("Practice area: %s\n", area)
	})

	if session.SimplifyError != nil {
		fmt.Printf("Simplification failed: %v\n",
			session.SimplifyError)
		fmt.Println("The document is uploaded and queryable; " +
			"run 'samvadhaan simplify' to retry.")
		return nil
	}

	if session.Simplification != nil {
		printSimplification(session.Simplification)

		if uploadReport != "" {
			err := writeReport(
				uploadReport, meta.Filename,
				session.Simplification,
			)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", uploadReport)
		}
	}

	return nil
}

// printSimplification prints the human-readable parts of a simplification.
func printSimplification(result *api.SimplifyResult) {
	if result.Structured != nil {
		s := result.Structured
		if s.DocumentType != "" {
			fmt.Printf("\nDocument type: %s\n", s.DocumentType)
		}
		if s.PlainEnglishSummary != "" {
			fmt.Printf("\n%s\n", s.PlainEnglishSummary)
		}
		for _, item := range s.WhatYouMustDoNext {
			fmt.Printf("  - %s\n", item)
		}
		if s.OverallWarnings != "" {
			fmt.Printf("\nWarning: %s\n", s.OverallWarnings)
		}
		return
	}

	fmt.Printf("\n%s\n", result.RawText)
}

// writeReport renders the simplification as an HTML file.
func writeReport(path, documentName string, result *api.SimplifyResult) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer out.Close()

	return report.Render(out, documentName, result)
}
