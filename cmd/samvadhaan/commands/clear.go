package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the backend document store",
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.client.ClearStore(ctx); err != nil {
		return err
	}

	// Everything cached against the old store is now invalid.
	e.ledger.Invalidate("")

	fmt.Println("Document store cleared.")
	return nil
}
