package daemon_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/daemon"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const wait = 2 * time.Second

// ============================================================================
// Broadcast
// ============================================================================

// TestServer_BroadcastsToAllClients ensures an event from one client reaches
// every connected client, the sender included.
func TestServer_BroadcastsToAllClients(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t)
	connA, encA, decA := testutil.ConnectRawClient(t, socketPath)
	connB, _, decB := testutil.ConnectRawClient(t, socketPath)

	require.True(t, testutil.WaitForCondition(t, func() bool {
		return server.Metrics().ConnectedClients.Load() == 2
	}, wait, "two clients registered"))

	testutil.SendEventMessage(t, encA, events.Event{
		Type:    events.EventBoardChanged,
		Source:  "client-a",
		ItemID:  "item-1",
		StageID: "won",
	})

	for _, rc := range []struct {
		name string
		msg  events.Message
	}{
		{"sender", testutil.ReadMessageOfType(t, decA, connA, events.MsgEvent, wait)},
		{"peer", testutil.ReadMessageOfType(t, decB, connB, events.MsgEvent, wait)},
	} {
		require.NotNil(t, rc.msg.Event, rc.name)
		assert.Equal(t, int64(1), rc.msg.Event.SequenceID, rc.name)
		assert.Equal(t, "client-a", rc.msg.Event.Source, rc.name)
		assert.Equal(t, "item-1", rc.msg.Event.ItemID, rc.name)
		assert.Equal(t, events.ProtocolVersion, rc.msg.Version, rc.name)
	}
}

func TestServer_SequenceIncrements(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	conn, enc, dec := testutil.ConnectRawClient(t, socketPath)

	for i := 0; i < 3; i++ {
		testutil.SendEventMessage(t, enc, events.Event{Type: events.EventBoardChanged})
	}

	var last int64
	for i := 0; i < 3; i++ {
		msg := testutil.ReadMessageOfType(t, dec, conn, events.MsgEvent, wait)
		assert.Greater(t, msg.Event.SequenceID, last)
		last = msg.Event.SequenceID
	}
	assert.Equal(t, int64(3), last)
}

// TestServer_Broadcast ensures in-process broadcasts reach clients.
func TestServer_Broadcast(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t)
	conn, _, dec := testutil.ConnectRawClient(t, socketPath)
	require.True(t, testutil.WaitForCondition(t, func() bool {
		return server.Metrics().ConnectedClients.Load() == 1
	}, wait, "client registered"))

	require.NoError(t, server.Broadcast(events.Event{Type: events.EventBoardChanged, ItemID: "x"}))

	msg := testutil.ReadMessageOfType(t, dec, conn, events.MsgEvent, wait)
	assert.Equal(t, "x", msg.Event.ItemID)
}

// ============================================================================
// Stats and health
// ============================================================================

func TestServer_Stats(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)
	conn, enc, dec := testutil.ConnectRawClient(t, socketPath)

	testutil.SendEventMessage(t, enc, events.Event{Type: events.EventBoardChanged})
	testutil.ReadMessageOfType(t, dec, conn, events.MsgEvent, wait)

	testutil.SendMessage(t, enc, events.Message{Type: events.MsgStats})
	msg := testutil.ReadMessageOfType(t, dec, conn, events.MsgStats, wait)

	require.NotNil(t, msg.Stats)
	assert.Equal(t, int32(1), msg.Stats.ConnectedClients)
	assert.Equal(t, int64(1), msg.Stats.EventsReceived)
	assert.Equal(t, int64(1), msg.Stats.Broadcasts)
	assert.False(t, msg.Stats.StartTime.IsZero())
}

func TestQueryStats(t *testing.T) {
	_, socketPath := testutil.SetupTestDaemon(t)

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	stats, err := events.QueryStats(ctx, socketPath)
	require.NoError(t, err)
	assert.Equal(t, int32(1), stats.ConnectedClients, "the querying connection itself")
}

// TestServer_RemovesSilentClients ensures clients that never answer pings
// are dropped.
func TestServer_RemovesSilentClients(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t, daemon.WithHeartbeat(20*time.Millisecond, 60*time.Millisecond))
	conn, _, dec := testutil.ConnectRawClient(t, socketPath)

	msg := testutil.ReadMessage(t, dec, conn, wait)
	assert.Equal(t, events.MsgPing, msg.Type)

	assert.True(t, testutil.WaitForCondition(t, func() bool {
		return server.Metrics().ConnectedClients.Load() == 0
	}, wait, "silent client removed"))
}

// TestServer_PongKeepsClientAlive ensures a listening client survives several
// heartbeat periods.
func TestServer_PongKeepsClientAlive(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t, daemon.WithHeartbeat(20*time.Millisecond, 100*time.Millisecond))
	client := testutil.SetupTestClient(t, socketPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err := client.Listen(ctx)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), server.Metrics().ConnectedClients.Load())
}

// ============================================================================
// Lifecycle
// ============================================================================

func TestServer_ShutdownRemovesSocket(t *testing.T) {
	server, socketPath := testutil.SetupTestDaemon(t)
	testutil.ConnectRawClient(t, socketPath)

	require.NoError(t, server.Shutdown())
	require.NoError(t, server.Shutdown(), "shutdown is idempotent")

	_, err := os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err))
}

// TestNewServer_ReplacesStaleSocket ensures a leftover socket file does not
// prevent startup.
func TestNewServer_ReplacesStaleSocket(t *testing.T) {
	socketPath := testutil.GetTestSocketPath(t)
	require.NoError(t, os.WriteFile(socketPath, nil, 0o600))

	server, err := daemon.NewServer(socketPath)
	require.NoError(t, err)
	require.NoError(t, server.Shutdown())
}

func TestMetrics_Snapshot(t *testing.T) {
	m := daemon.NewMetrics()
	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncEventsDropped()
	m.IncBroadcasts()
	m.SetConnectedClients(3)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.EventsSent)
	assert.Equal(t, int64(1), s.EventsReceived)
	assert.Equal(t, int64(1), s.EventsDropped)
	assert.Equal(t, int64(1), s.Broadcasts)
	assert.Equal(t, int32(3), s.ConnectedClients)
	assert.Equal(t, m.StartTime, s.StartTime)
}
