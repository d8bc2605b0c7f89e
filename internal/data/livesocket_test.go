package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

// waitForConns polls until the server has seen want connections or the
// deadline passes.
func waitForConns(t *testing.T, conns *int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for atomic.LoadInt32(conns) < want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d connections, got %d", want, atomic.LoadInt32(conns))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestUncleanCloseReconnectsOnce(t *testing.T) {
	var conns int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&conns, 1)
		conn.Close() // abrupt close, no close frame
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{
		URL:                  wsURL(server),
		Reconnect:            true,
		ReconnectDelay:       30 * time.Millisecond,
		MaxReconnectAttempts: 1,
	})
	defer socket.Disconnect()

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	waitForConns(t, &conns, 2)
	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&conns); got != 2 {
		t.Errorf("Expected exactly 1 reconnect (2 connections), got %d", got)
	}
	if socket.State() != SocketError {
		t.Errorf("Expected error state after exhausted budget, got %s", socket.State())
	}
}

func TestCleanCloseDoesNotReconnect(t *testing.T) {
	var conns int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&conns, 1)
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		conn.ReadMessage() // wait for the client's close response
		conn.Close()
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{
		URL:            wsURL(server),
		Reconnect:      true,
		ReconnectDelay: 30 * time.Millisecond,
	})

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for socket.State() != SocketDisconnected {
		if time.Now().After(deadline) {
			t.Fatalf("Expected disconnected state, got %s", socket.State())
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := atomic.LoadInt32(&conns); got != 1 {
		t.Errorf("Expected no reconnect after clean close, got %d connections", got)
	}
}

func TestReconnectStopsAtBudget(t *testing.T) {
	var conns int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&conns, 1)
		conn.Close()
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{
		URL:                  wsURL(server),
		Reconnect:            true,
		ReconnectDelay:       20 * time.Millisecond,
		MaxReconnectAttempts: 2,
	})
	defer socket.Disconnect()

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	waitForConns(t, &conns, 3)
	time.Sleep(200 * time.Millisecond)

	if got := atomic.LoadInt32(&conns); got != 3 {
		t.Errorf("Expected 3 connections (initial + 2 reconnects), got %d", got)
	}
}

func TestDisconnectSuppressesPendingReconnect(t *testing.T) {
	var conns int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&conns, 1)
		conn.Close()
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{
		URL:            wsURL(server),
		Reconnect:      true,
		ReconnectDelay: 300 * time.Millisecond,
	})

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for socket.State() != SocketError {
		if time.Now().After(deadline) {
			t.Fatalf("Expected error state, got %s", socket.State())
		}
		time.Sleep(5 * time.Millisecond)
	}

	socket.Disconnect()
	time.Sleep(500 * time.Millisecond)

	if got := atomic.LoadInt32(&conns); got != 1 {
		t.Errorf("Expected Disconnect to suppress the pending reconnect, got %d connections", got)
	}
	if socket.State() != SocketDisconnected {
		t.Errorf("Expected disconnected state, got %s", socket.State())
	}
}

func TestConnectResetsReconnectBudget(t *testing.T) {
	var conns int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&conns, 1)
		conn.Close()
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{
		URL:                  wsURL(server),
		Reconnect:            true,
		ReconnectDelay:       20 * time.Millisecond,
		MaxReconnectAttempts: 1,
	})
	defer socket.Disconnect()

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	waitForConns(t, &conns, 2)
	time.Sleep(100 * time.Millisecond)

	// A fresh explicit Connect gets a fresh attempt budget
	socket.Connect(context.Background())
	waitForConns(t, &conns, 4)
}

func TestMessagesAndHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for _, msg := range []string{"one", "two", "three"} {
			conn.WriteMessage(websocket.TextMessage, []byte(msg))
		}
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		conn.ReadMessage()
		conn.Close()
	}))
	defer server.Close()

	socket := NewSocket(SocketConfig{URL: wsURL(server), MessageHistory: 2})

	var mu sync.Mutex
	var received []string
	socket.OnMessage(func(msg []byte) {
		mu.Lock()
		received = append(received, string(msg))
		mu.Unlock()
	})

	if err := socket.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for socket.State() != SocketDisconnected {
		if time.Now().After(deadline) {
			t.Fatalf("Expected disconnected state, got %s", socket.State())
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	if len(received) != 3 || received[0] != "one" || received[2] != "three" {
		t.Errorf("Expected all 3 messages delivered in order, got %v", received)
	}
	mu.Unlock()

	history := socket.Messages()
	if len(history) != 2 || string(history[0]) != "two" || string(history[1]) != "three" {
		t.Errorf("Expected history bounded to last 2 messages, got %d entries", len(history))
	}
	last, ok := socket.LastMessage()
	if !ok || string(last) != "three" {
		t.Errorf("Expected last message %q, got %q", "three", last)
	}
}
