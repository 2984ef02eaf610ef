package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/speak"
)

var translateLang string

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate English text into an Indian language",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(
		&translateLang, "lang", "hindi",
		"Target language (hindi, telugu, tamil, kannada, "+
			"malayalam, bengali, marathi, gujarati)",
	)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	player := speak.NewExecPlayer("", backendBaseURL(), e.log)
	coordinator := speak.NewCoordinator(e.client, player, e.log)

	translated, err := coordinator.Translate(
		ctx, strings.Join(args, " "), translateLang,
	)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(coordinator.Session())
	}

	fmt.Println(translated)
	return nil
}
