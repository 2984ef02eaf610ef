package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend document store status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	status, err := e.client.GetStatus(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(status)
	}

	fmt.Printf("Indexed vectors: %d\n", status.TotalVectors)
	if len(status.Documents) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}

	fmt.Println("Documents:")
	for _, doc := range status.Documents {
		fmt.Printf("  - %s\n", doc)
	}

	return nil
}
