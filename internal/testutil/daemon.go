package testutil

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/daemon"
	"github.com/thenoetrevino/pipeboard/internal/events"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
// Unix socket paths are length-limited, so it avoids t.TempDir's long names.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "pb")
	if err != nil {
		t.Fatalf("Failed to create socket dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return filepath.Join(dir, "d.sock")
}

// SetupTestDaemon creates a test daemon server on a temporary socket and
// starts it. Cleanup shuts it down and waits for Start to return.
func SetupTestDaemon(t *testing.T, opts ...daemon.ServerOption) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)

	server, err := daemon.NewServer(socketPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Start(context.Background()); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()

	t.Cleanup(func() {
		if err := server.Shutdown(); err != nil {
			t.Logf("Warning: daemon shutdown error during cleanup: %v", err)
		}
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Errorf("daemon did not stop")
		}
	})

	return server, socketPath
}

// SetupTestClient creates a test event client connected to the given socket path.
// Cleanup is automatic via t.Cleanup().
func SetupTestClient(t *testing.T, socketPath string, opts ...events.ClientOption) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath, opts...)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("Warning: client close error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}

	return client
}

// ConnectRawClient creates a raw net.Conn to the daemon socket for low-level testing.
// Returns the connection, encoder, and decoder. Cleanup is automatic via t.Cleanup().
func ConnectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial daemon socket: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

// WaitForEvent waits for an event on a channel with timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForNoEvent verifies that NO event is received within the timeout.
func WaitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()

	select {
	case event, ok := <-ch:
		if ok {
			t.Fatalf("Unexpected event received: %+v", event)
		}
	case <-time.After(timeout):
		// Success - no event received
	}
}

// SendMessage writes a wire message from a raw connection.
func SendMessage(t *testing.T, encoder *json.Encoder, msg events.Message) {
	t.Helper()

	msg.Version = events.ProtocolVersion
	if err := encoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send %s message: %v", msg.Type, err)
	}
}

// SendEventMessage sends an event message from a raw connection.
func SendEventMessage(t *testing.T, encoder *json.Encoder, event events.Event) {
	t.Helper()
	SendMessage(t, encoder, events.Message{Type: events.MsgEvent, Event: &event})
}

// ReadMessage reads a message from a raw connection with timeout.
func ReadMessage(t *testing.T, decoder *json.Decoder, conn net.Conn, timeout time.Duration) events.Message {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var msg events.Message
	if err := decoder.Decode(&msg); err != nil {
		t.Fatalf("Failed to read message: %v", err)
	}

	return msg
}

// ReadMessageOfType reads messages until one of the given type arrives.
func ReadMessageOfType(t *testing.T, decoder *json.Decoder, conn net.Conn, msgType string, timeout time.Duration) events.Message {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		msg := ReadMessage(t, decoder, conn, time.Until(deadline))
		if msg.Type == msgType {
			return msg
		}
	}
	t.Fatalf("Timeout waiting for %s message", msgType)
	return events.Message{}
}

// WaitForCondition waits for a condition to become true within the timeout.
// The condition function is called repeatedly until it returns true or timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Logf("Timeout waiting for condition: %s", description)
	return false
}
