package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/favron1/ev-ace-advisor/pkg/match"
)

// StreamConfig holds odds-stream connection settings.
type StreamConfig struct {
	// URL is the WebSocket endpoint pushing BookEvent updates.
	URL string

	// Reconnect backoff. Delay doubles from Min to Max per attempt and
	// resets after a successful connect.
	ReconnectMinDelay time.Duration
	ReconnectMaxDelay time.Duration

	// HeartbeatInterval is the ping cadence keeping the connection alive.
	HeartbeatInterval time.Duration

	// ReadTimeout bounds a single read; a pong or message must arrive
	// within it.
	ReadTimeout time.Duration

	// Buffer is the event channel capacity. When the buffer is full the
	// oldest update is dropped: the next polling cycle re-fetches
	// everything anyway.
	Buffer int
}

// DefaultStreamConfig returns a config with sensible defaults.
func DefaultStreamConfig(url string) StreamConfig {
	return StreamConfig{
		URL:               url,
		ReconnectMinDelay: 1 * time.Second,
		ReconnectMaxDelay: 30 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
		Buffer:            256,
	}
}

// Stream is a reconnecting consumer of live bookmaker row updates.
// Updates only feed the caller's row buffer between polling cycles; the
// index itself is still rebuilt once per cycle.
type Stream struct {
	cfg    StreamConfig
	events chan match.BookEvent

	mu   sync.Mutex
	conn *websocket.Conn

	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewStream creates a stream consumer. Call Run to start it.
func NewStream(cfg StreamConfig) *Stream {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}
	return &Stream{
		cfg:     cfg,
		events:  make(chan match.BookEvent, cfg.Buffer),
		closeCh: make(chan struct{}),
	}
}

// Events returns the channel of decoded row updates.
func (s *Stream) Events() <-chan match.BookEvent { return s.events }

// Run connects and consumes until ctx is done or Close is called,
// reconnecting with exponential backoff on any failure.
func (s *Stream) Run(ctx context.Context) {
	delay := s.cfg.ReconnectMinDelay
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closeCh:
			return
		default:
		}

		err := s.consume(ctx)
		if err == nil {
			return // clean shutdown
		}
		log.Printf("[ODDS-STREAM] connection lost, reconnecting in %s: %v", delay, err)

		select {
		case <-ctx.Done():
			return
		case <-s.closeCh:
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > s.cfg.ReconnectMaxDelay {
			delay = s.cfg.ReconnectMaxDelay
		}
	}
}

// Close shuts the stream down and releases the connection.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
		}
		s.mu.Unlock()
	})
}

// consume runs one connection lifetime. A nil return means deliberate
// shutdown; any error triggers a reconnect.
func (s *Stream) consume(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer conn.Close()

	log.Printf("[ODDS-STREAM] connected to %s", s.cfg.URL)

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	})

	// Heartbeat.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(s.cfg.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				deadline := time.Now().Add(10 * time.Second)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.closeCh:
			return nil
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-s.closeCh:
				return nil
			default:
				return err
			}
		}
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))

		var row match.BookEvent
		if err := json.Unmarshal(data, &row); err != nil {
			log.Printf("[ODDS-STREAM] skipping malformed update: %v", err)
			continue
		}

		select {
		case s.events <- row:
		default:
			// Buffer full: drop the oldest so fresh prices win.
			select {
			case <-s.events:
			default:
			}
			select {
			case s.events <- row:
			default:
			}
		}
	}
}
