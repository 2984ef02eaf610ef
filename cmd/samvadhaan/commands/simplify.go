package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

var (
	simplifyLang   string
	simplifyDoc    string
	simplifyReport string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Get a plain-language simplification of the uploaded document",
	RunE:  runSimplify,
}

func init() {
	simplifyCmd.Flags().StringVar(
		&simplifyLang, "lang", "",
		"Target language for server-side translation (e.g. hindi)",
	)
	simplifyCmd.Flags().StringVar(
		&simplifyDoc, "doc", "",
		"Simplify only this document (default: all indexed)",
	)
	simplifyCmd.Flags().StringVar(
		&simplifyReport, "report", "",
		"Write an HTML report to this path",
	)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	key := fmt.Sprintf("simplify:%s:%s", simplifyDoc, simplifyLang)

	var result *api.SimplifyResult
	if cached, ok := e.ledger.Lookup(key); ok {
		result = cached.(*api.SimplifyResult)
	} else {
		val, err := e.ledger.RunDeduplicated(ctx, key,
			func(ctx context.Context) (any, error) {
				return e.client.GetPlainLanguage(
					ctx, simplifyLang, simplifyDoc,
				)
			},
		)
		if err != nil {
			return err
		}

		result = val.(*api.SimplifyResult)
		e.ledger.Store(key, result)
	}

	if jsonOutput {
		return outputJSON(result)
	}

	printSimplification(result)

	if result.TranslatedText != "" {
		fmt.Printf("\n%s\n", result.TranslatedText)
	}

	if simplifyReport != "" {
		err := writeReport(simplifyReport, simplifyDoc, result)
		if err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", simplifyReport)
	}

	return nil
}
