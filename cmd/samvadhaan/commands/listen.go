package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mankudhanush/SAMVADHAANAI/internal/rate"
	"github.com/mankudhanush/SAMVADHAANAI/internal/voice"
)

var (
	listenSTTURL string
	listenLocale string
	listenAsk    bool
)

const (
	// transcriptEchoInterval throttles interim transcript echoes so a
	// fast talker does not flood the terminal.
	transcriptEchoInterval = 500 * time.Millisecond

	// questionSettleDelay is how long the transcript must stay
	// unchanged before it is treated as the settled question.
	questionSettleDelay = 2 * time.Second
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Capture a spoken question from the microphone",
	Long: `Open a continuous speech-capture session against a streaming
speech-to-text endpoint. The transcript accumulates live with script-based
language detection; stop with Ctrl+C. With --ask, the final transcript is
submitted as a question.`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVar(
		&listenSTTURL, "stt-url", "ws://localhost:8765/stt",
		"Streaming speech-to-text websocket endpoint",
	)
	listenCmd.Flags().StringVar(
		&listenLocale, "locale", voice.DefaultLocale,
		"Capture locale",
	)
	listenCmd.Flags().BoolVar(
		&listenAsk, "ask", false,
		"Submit the final transcript as a question",
	)
}

func runListen(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.close()

	var mu sync.Mutex
	var latest string

	// Echo live transcript updates at a readable pace and track the
	// settled question once the speaker pauses.
	echo := rate.NewThrottler(transcriptEchoInterval, func() {
		mu.Lock()
		text := latest
		mu.Unlock()

		fmt.Printf("\r> %s", text)
	})
	defer echo.Stop()

	settled := rate.NewDebouncer(
		questionSettleDelay, func(text string) {
			fmt.Printf("\n(question settled: %s)\n", text)
		},
	)
	defer settled.Stop()

	recognizer := voice.NewWSRecognizer(listenSTTURL, e.log)
	controller := voice.NewController(voice.Config{
		Locale: listenLocale,
		OnTranscript: func(text string) {
			mu.Lock()
			latest = text
			mu.Unlock()

			echo.Call()
			settled.Set(text)
		},
	}, recognizer, e.log)

	if err := controller.Toggle(); err != nil {
		return err
	}
	fmt.Println("Listening... (Ctrl+C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			controller.Stop()
		case <-time.After(200 * time.Millisecond):
		}

		session := controller.Session()
		if session.State != voice.StateStopped {
			continue
		}

		fmt.Println()

		if session.Err != nil {
			return fmt.Errorf("%s", session.Err.Message())
		}

		fmt.Printf("Transcript: %s\n", session.FinalTranscript)
		session.DetectedLanguage.WhenSome(func(lang string) {
			fmt.Printf("Detected language: %s\n", lang)
		})

		if listenAsk && session.FinalTranscript != "" {
			return askOnce(ctx, e, session.FinalTranscript)
		}

		return nil
	}
}
