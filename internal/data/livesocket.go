package data

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridhost/widget-dashboard/internal/event"
)

// Live-socket defaults
const (
	DefaultReconnectDelay       = 3 * time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultMessageHistory       = 64
)

// SocketState is the connection lifecycle state
type SocketState string

const (
	// SocketIdle means no connection has been attempted
	SocketIdle SocketState = "idle"

	// SocketConnecting means a dial is in progress
	SocketConnecting SocketState = "connecting"

	// SocketConnected means the connection is open
	SocketConnected SocketState = "connected"

	// SocketDisconnected means the connection closed cleanly or was
	// intentionally torn down.
	SocketDisconnected SocketState = "disconnected"

	// SocketError means the connection failed or closed uncleanly
	SocketError SocketState = "error"
)

// SocketConfig describes a live-socket subscription
type SocketConfig struct {
	URL                  string
	Reconnect            bool
	ReconnectDelay       time.Duration // DefaultReconnectDelay when zero
	MaxReconnectAttempts int           // DefaultMaxReconnectAttempts when zero
	MessageHistory       int           // DefaultMessageHistory when zero
}

// Socket is a live-socket connection with automatic bounded reconnection.
// Reconnection fires only after an unclean closure; a clean close or an
// explicit Disconnect never schedules one.
type Socket struct {
	cfg    SocketConfig
	dialer *websocket.Dialer

	mu         sync.Mutex
	state      SocketState
	conn       *websocket.Conn
	ctx        context.Context
	attempts   int
	closed     bool
	timer      *time.Timer
	messages   [][]byte
	msgFeed    *event.Feed[[]byte]
	stateFeed  *event.Feed[SocketState]
}

// NewSocket creates a socket in the idle state; nothing is dialed until
// Connect.
func NewSocket(cfg SocketConfig) *Socket {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if cfg.MessageHistory <= 0 {
		cfg.MessageHistory = DefaultMessageHistory
	}
	return &Socket{
		cfg:       cfg,
		dialer:    websocket.DefaultDialer,
		state:     SocketIdle,
		msgFeed:   event.NewFeed[[]byte](),
		stateFeed: event.NewFeed[SocketState](),
	}
}

// State returns the current connection state
func (s *Socket) State() SocketState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Socket) setState(state SocketState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.stateFeed.Publish(state)
}

// Connect dials the configured URL. An explicit Connect resets the
// reconnection budget. ctx bounds the connection's whole lifetime;
// cancelling it tears the socket down like Disconnect.
func (s *Socket) Connect(ctx context.Context) error {
	s.mu.Lock()
	s.closed = false
	s.attempts = 0
	s.ctx = ctx
	s.mu.Unlock()

	return s.dial(ctx)
}

func (s *Socket) dial(ctx context.Context) error {
	s.setState(SocketConnecting)

	conn, resp, err := s.dialer.DialContext(ctx, s.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		s.setState(SocketError)
		s.maybeReconnect()
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.setState(SocketConnected)

	go s.readLoop(conn)
	return nil
}

// readLoop pumps messages until the connection dies
func (s *Socket) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.handleClosed(err)
			return
		}

		s.mu.Lock()
		s.messages = append(s.messages, message)
		if len(s.messages) > s.cfg.MessageHistory {
			s.messages = s.messages[len(s.messages)-s.cfg.MessageHistory:]
		}
		s.mu.Unlock()

		s.msgFeed.Publish(message)
	}
}

// handleClosed classifies the closure and drives the state machine.
// A normal close code or an intentional Disconnect is clean; everything
// else is unclean and subject to the reconnection policy.
func (s *Socket) handleClosed(err error) {
	s.mu.Lock()
	intentional := s.closed
	s.conn = nil
	s.mu.Unlock()

	if intentional || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		s.setState(SocketDisconnected)
		return
	}

	slog.Debug("live socket closed uncleanly", "url", s.cfg.URL, "error", err)
	s.setState(SocketError)
	s.maybeReconnect()
}

// maybeReconnect schedules one redial after the fixed delay, respecting
// the bounded attempt budget. Never called for clean closures.
func (s *Socket) maybeReconnect() {
	if !s.cfg.Reconnect {
		return
	}

	s.mu.Lock()
	if s.closed || s.attempts >= s.cfg.MaxReconnectAttempts {
		s.mu.Unlock()
		return
	}
	s.attempts++
	ctx := s.ctx
	s.timer = time.AfterFunc(s.cfg.ReconnectDelay, func() {
		s.mu.Lock()
		canceled := s.closed || (ctx != nil && ctx.Err() != nil)
		s.mu.Unlock()
		if canceled {
			return
		}
		_ = s.dial(ctx)
	})
	s.mu.Unlock()
}

// Send writes a text message over the connection
func (s *Socket) Send(message []byte) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return websocket.ErrCloseSent
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Disconnect closes the connection cleanly and suppresses any pending
// reconnection. Safe to call in any state.
func (s *Socket) Disconnect() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	conn := s.conn
	s.mu.Unlock()

	if conn != nil {
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
	}
	s.setState(SocketDisconnected)
}

// Messages returns a copy of the bounded message history
func (s *Socket) Messages() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([][]byte, len(s.messages))
	copy(history, s.messages)
	return history
}

// LastMessage returns the most recent message, if any
func (s *Socket) LastMessage() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return nil, false
	}
	return s.messages[len(s.messages)-1], true
}

// OnMessage subscribes to incoming messages; returns the unsubscribe func
func (s *Socket) OnMessage(callback func([]byte)) func() {
	return s.msgFeed.Subscribe(callback)
}

// OnStateChange subscribes to connection state transitions
func (s *Socket) OnStateChange(callback func(SocketState)) func() {
	return s.stateFeed.Subscribe(callback)
}
