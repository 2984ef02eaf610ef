package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/api"
)

var askInteractive bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the uploaded documents",
	Long: `Ask a question against the indexed documents. With --interactive,
read questions from stdin in a loop; repeated questions within the session
are answered from the request ledger without a second backend call.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(
		&askInteractive, "interactive", "i", false,
		"Read questions from stdin in a loop",
	)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if !askInteractive {
		if len(args) == 0 {
			return fmt.Errorf("provide a question or use -i")
		}

		return askOnce(ctx, e, strings.Join(args, " "))
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Ask questions about your documents (blank line quits).")

	for {
		fmt.Print("? ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			return nil
		}

		if err := askOnce(ctx, e, question); err != nil {
			// Surface the message and allow retry by asking
			// again.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// askOnce answers one question, deduplicating and caching through the
// request ledger.
func askOnce(ctx context.Context, e *env, question string) error {
	key := "query:" + question

	if cached, ok := e.ledger.Lookup(key); ok {
		printAnswer(cached.(*api.Answer))
		return nil
	}

	val, err := e.ledger.RunDeduplicated(ctx, key,
		func(ctx context.Context) (any, error) {
			return e.client.QueryRAG(ctx, question)
		},
	)
	if err != nil {
		return err
	}

	answer := val.(*api.Answer)
	e.ledger.Store(key, answer)

	printAnswer(answer)
	return nil
}

func printAnswer(answer *api.Answer) {
	if jsonOutput {
		_ = outputJSON(answer)
		return
	}

	fmt.Println(answer.Answer)

	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range answer.Sources {
			fmt.Printf("  [%d] %s p.%d\n",
				src.SourceID, src.Document, src.Page)
		}
	}
}
