package commands

import (
	"fmt"

	"github.com/mankudhanush/SAMVADHAANAI/internal/build"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the samvadhaan version",
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("samvadhaan version %s\n", build.Version())
	if build.Commit != "" {
		fmt.Printf("commit: %s\n", build.Commit)
	}
}
