package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/speak"
)

var (
	speakLang   string
	speakPlayer string
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Synthesize text as speech and play it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSpeak,
}

func init() {
	speakCmd.Flags().StringVar(
		&speakLang, "lang", "hindi",
		"Language of the text (e.g. hindi)",
	)
	speakCmd.Flags().StringVar(
		&speakPlayer, "player", "",
		"External audio player command (default: ffplay)",
	)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	player := speak.NewExecPlayer(speakPlayer, backendBaseURL(), e.log)
	coordinator := speak.NewCoordinator(e.client, player, e.log)

	err = coordinator.Speak(ctx, strings.Join(args, " "), speakLang)
	if err != nil {
		return err
	}

	fmt.Println("Playing... (Ctrl+C to stop)")
	for player.Playing() {
		time.Sleep(200 * time.Millisecond)
	}

	return nil
}
