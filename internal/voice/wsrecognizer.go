package voice

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// wsWriteWait bounds a single control-message write to the peer.
	wsWriteWait = 10 * time.Second

	// wsHandshakeTimeout bounds the dial.
	wsHandshakeTimeout = 5 * time.Second

	// wsEventBuffer is the capacity of the event channel; capture
	// events are small and frequent.
	wsEventBuffer = 64
)

// wsFrame is the wire shape of one streaming STT message.
type wsFrame struct {
	Type     string `json:"type"`
	Locale   string `json:"locale,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Segments []struct {
		Text  string `json:"text"`
		Final bool   `json:"final"`
	} `json:"segments,omitempty"`
}

// WSRecognizer implements the Recognizer capability over a websocket
// connection to a streaming speech-to-text endpoint. Each Start dials a
// fresh connection; the server pushes result/end/error frames that map
// one-to-one onto capture events.
type WSRecognizer struct {
	endpoint string
	log      *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWSRecognizer creates a websocket recognizer for the given ws:// or
// wss:// endpoint.
func NewWSRecognizer(endpoint string, log *slog.Logger) *WSRecognizer {
	if log == nil {
		log = slog.Default()
	}

	return &WSRecognizer{
		endpoint: endpoint,
		log:      log.With("component", "stt"),
	}
}

// Start dials the endpoint and begins a capture session for the locale.
func (r *WSRecognizer) Start(locale string) (<-chan Event, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse stt endpoint: %w", err)
	}
	q := u.Query()
	q.Set("locale", locale)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		HandshakeTimeout: wsHandshakeTimeout,
	}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial stt endpoint: %w", err)
	}

	r.mu.Lock()
	// A dangling previous session loses its connection; its read pump
	// exits on the close error and closes its own channel.
	if r.conn != nil {
		r.conn.Close()
	}
	r.conn = conn
	r.mu.Unlock()

	events := make(chan Event, wsEventBuffer)
	go r.readPump(conn, events)

	return events, nil
}

// Stop asks the server to finalize the session. The end frame still arrives
// on the event stream before the connection closes.
func (r *WSRecognizer) Stop() {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()

	if conn == nil {
		return
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	err := conn.WriteJSON(wsFrame{Type: "stop"})
	if err != nil {
		r.log.Debug("stop frame write failed", "err", err)
		conn.Close()
	}
}

// readPump translates server frames into capture events until the
// connection ends, then closes the event channel.
func (r *WSRecognizer) readPump(conn *websocket.Conn,
	events chan<- Event) {

	defer func() {
		conn.Close()
		close(events)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			// A close initiated by Stop surfaces as a normal
			// closure; anything else ends the session too.
			if !websocket.IsCloseError(
				err, websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
			) {
				r.log.Debug("stt read ended", "err", err)
			}

			events <- EndEvent{}
			return
		}

		var frame wsFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			r.log.Warn("malformed stt frame", "err", err)
			continue
		}

		switch frame.Type {
		case "result":
			segments := make([]Segment, len(frame.Segments))
			for i, s := range frame.Segments {
				segments[i] = Segment{
					Text:  s.Text,
					Final: s.Final,
				}
			}
			events <- ResultEvent{Segments: segments}

		case "end":
			events <- EndEvent{}
			return

		case "error":
			events <- ErrorEvent{Reason: frame.Reason}
			return

		default:
			r.log.Debug("unknown stt frame type",
				"type", frame.Type)
		}
	}
}
