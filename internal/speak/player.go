package speak

import (
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// DefaultPlayerCommand is the external audio player invoked by ExecPlayer.
// ffplay ships with ffmpeg and plays a URL directly.
const DefaultPlayerCommand = "ffplay"

// ExecPlayer implements AudioPlayer by running an external player process.
// Pause kills the process and Rewind is implicit: the next Play starts the
// bound resource from the beginning.
type ExecPlayer struct {
	command string
	baseURL string
	log     *slog.Logger

	mu      sync.Mutex
	url     string
	proc    *exec.Cmd
	playing bool
}

// NewExecPlayer creates a player. baseURL resolves backend-relative
// resource paths like /static/tts/out.mp3; command defaults to
// DefaultPlayerCommand.
func NewExecPlayer(command, baseURL string, log *slog.Logger) *ExecPlayer {
	if command == "" {
		command = DefaultPlayerCommand
	}
	if log == nil {
		log = slog.Default()
	}

	return &ExecPlayer{
		command: command,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With("component", "player"),
	}
}

// Load binds a new resource, replacing and stopping any prior one.
func (p *ExecPlayer) Load(resourceURL string) error {
	p.stop()

	if strings.HasPrefix(resourceURL, "/") {
		resourceURL = p.baseURL + resourceURL
	}

	p.mu.Lock()
	p.url = resourceURL
	p.mu.Unlock()

	return nil
}

// Play starts the external player on the bound resource.
func (p *ExecPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cmd := exec.Command(
		p.command, "-nodisp", "-autoexit", "-loglevel", "quiet",
		p.url,
	)
	if err := cmd.Start(); err != nil {
		return err
	}

	p.proc = cmd
	p.playing = true

	// Reap the process and drop the playing flag when it exits on its
	// own.
	go func() {
		_ = cmd.Wait()

		p.mu.Lock()
		if p.proc == cmd {
			p.playing = false
			p.proc = nil
		}
		p.mu.Unlock()
	}()

	return nil
}

// Pause halts playback by killing the player process.
func (p *ExecPlayer) Pause() {
	p.stop()
}

// Rewind is a no-op: the next Play starts from the beginning.
func (p *ExecPlayer) Rewind() {}

// Playing reports whether the player process is running.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

// stop kills any running player process.
func (p *ExecPlayer) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.proc != nil && p.proc.Process != nil {
		_ = p.proc.Process.Kill()
	}
	p.proc = nil
	p.playing = false
}
