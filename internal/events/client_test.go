package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const wait = 2 * time.Second

func listen(t *testing.T, c *events.Client) <-chan events.Event {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch, err := c.Listen(ctx)
	require.NoError(t, err)
	return ch
}

// ============================================================================
// Send and receive
// ============================================================================

// TestClient_SendAndListen ensures an event sent by one board reaches another
// with the sender's identity attached.
func TestClient_SendAndListen(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	sender := testutil.SetupTestClient(t, socketPath, events.WithDebounce(10*time.Millisecond))
	receiver := testutil.SetupTestClient(t, socketPath)
	ch := listen(t, receiver)

	require.NoError(t, sender.SendEvent(events.Event{ItemID: "item-1", StageID: "won"}))

	got := testutil.WaitForEvent(t, ch, wait)
	assert.Equal(t, events.EventBoardChanged, got.Type)
	assert.Equal(t, sender.ID(), got.Source)
	assert.Equal(t, "item-1", got.ItemID)
	assert.Equal(t, "won", got.StageID)
	assert.Positive(t, got.SequenceID)
	assert.NotEqual(t, sender.ID(), receiver.ID())
}

// TestClient_BatchesEvents ensures a burst is coalesced. Edge case: mixed
// items clear the item details.
func TestClient_BatchesEvents(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	sender := testutil.SetupTestClient(t, socketPath, events.WithDebounce(200*time.Millisecond))
	receiver := testutil.SetupTestClient(t, socketPath)
	ch := listen(t, receiver)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, sender.SendEvent(events.Event{ItemID: id}))
	}

	first := testutil.WaitForEvent(t, ch, wait)
	received := 1
	deadline := time.After(500 * time.Millisecond)
drain:
	for {
		select {
		case <-ch:
			received++
		case <-deadline:
			break drain
		}
	}

	assert.Less(t, received, 3, "burst should be coalesced")
	if received == 1 {
		assert.Empty(t, first.ItemID)
	}
}

// TestClient_CloseFlushesPending ensures queued events are sent on Close.
func TestClient_CloseFlushesPending(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	receiver := testutil.SetupTestClient(t, socketPath)
	ch := listen(t, receiver)

	sender, err := events.NewClient(socketPath, events.WithDebounce(time.Hour))
	require.NoError(t, err)
	require.NoError(t, sender.Connect(context.Background()))

	require.NoError(t, sender.SendEvent(events.Event{ItemID: "late"}))
	require.NoError(t, sender.Close())

	got := testutil.WaitForEvent(t, ch, wait)
	assert.Equal(t, "late", got.ItemID)
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestClient_SendAfterClose(t *testing.T) {
	c, err := events.NewClient("/nonexistent.sock")
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")

	assert.ErrorIs(t, c.SendEvent(events.Event{}), events.ErrClosed)
	assert.ErrorIs(t, c.Connect(context.Background()), events.ErrClosed)
}

func TestClient_QueueFull(t *testing.T) {
	c, err := events.NewClient("/nonexistent.sock")
	require.NoError(t, err)
	defer c.Close()

	// never connected, so nothing drains the queue
	var lastErr error
	for i := 0; i < 200 && lastErr == nil; i++ {
		lastErr = c.SendEvent(events.Event{})
	}
	assert.ErrorIs(t, lastErr, events.ErrQueueFull)
}

func TestClient_ConnectWithoutDaemon(t *testing.T) {
	c, err := events.NewClient(testutil.GetTestSocketPath(t))
	require.NoError(t, err)
	defer c.Close()

	err = c.Connect(context.Background())
	require.Error(t, err)

	var de *events.DaemonError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, events.ErrSocketNotFound, de.Code)
}

func TestClient_ListenStopsOnCancel(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	c := testutil.SetupTestClient(t, socketPath)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := c.Listen(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(wait):
		t.Fatal("listen channel not closed after cancel")
	}
}

// TestClient_ListenGivesUpWithoutDaemon ensures the reconnect loop ends once
// its attempts are exhausted.
func TestClient_ListenGivesUpWithoutDaemon(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t)
	c := testutil.SetupTestClient(t, socketPath, events.WithReconnect(2, 10*time.Millisecond))
	ch := listen(t, c)

	require.NoError(t, server.Shutdown())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(wait):
		t.Fatal("listen channel not closed after daemon went away")
	}
}

// ============================================================================
// Raw daemon
// ============================================================================

// rawDaemon listens on a fresh socket and hands over the first connection
// so a test can script what the client sees.
func rawDaemon(t *testing.T) (string, <-chan net.Conn) {
	t.Helper()
	socketPath := testutil.GetTestSocketPath(t)
	ln, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()
	return socketPath, accepted
}

func acceptedConn(t *testing.T, accepted <-chan net.Conn) net.Conn {
	t.Helper()
	select {
	case conn, ok := <-accepted:
		require.True(t, ok, "daemon socket closed before the client connected")
		t.Cleanup(func() { _ = conn.Close() })
		return conn
	case <-time.After(wait):
		t.Fatal("client never connected")
		return nil
	}
}

// TestClient_DropsRepeatedSequence ensures an event delivered twice reaches
// the board once.
func TestClient_DropsRepeatedSequence(t *testing.T) {
	socketPath, accepted := rawDaemon(t)
	c := testutil.SetupTestClient(t, socketPath)
	conn := acceptedConn(t, accepted)
	ch := listen(t, c)

	enc := json.NewEncoder(conn)
	ev := events.Event{Type: events.EventBoardChanged, SequenceID: 1, ItemID: "item-1"}
	testutil.SendEventMessage(t, enc, ev)
	testutil.SendEventMessage(t, enc, ev)

	got := testutil.WaitForEvent(t, ch, wait)
	assert.Equal(t, int64(1), got.SequenceID)
	testutil.WaitForNoEvent(t, ch, 200*time.Millisecond)

	ev.SequenceID = 2
	testutil.SendEventMessage(t, enc, ev)
	got = testutil.WaitForEvent(t, ch, wait)
	assert.Equal(t, int64(2), got.SequenceID)
}

// TestClient_ReadTimeoutDropsSilentDaemon ensures a daemon that stops
// talking, pings included, is treated as gone.
func TestClient_ReadTimeoutDropsSilentDaemon(t *testing.T) {
	socketPath, accepted := rawDaemon(t)
	c := testutil.SetupTestClient(t, socketPath,
		events.WithReadTimeout(50*time.Millisecond),
		events.WithReconnect(0, 10*time.Millisecond))
	acceptedConn(t, accepted)
	ch := listen(t, c)

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(wait):
		t.Fatal("listen channel not closed after the daemon went silent")
	}
}
