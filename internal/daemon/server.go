// Package daemon relays board change events between pipeboard processes
// over a Unix domain socket.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/events"
	"golang.org/x/sync/errgroup"
)

// ErrBroadcastFull is returned by Broadcast when the queue is saturated
var ErrBroadcastFull = errors.New("broadcast channel full")

// client represents a connected client to the daemon
type client struct {
	conn      net.Conn
	send      chan events.Message
	lastPong  time.Time
	mu        sync.Mutex // Protects lastPong
	closeOnce sync.Once  // Ensures send channel is closed only once
}

// Server represents the pipeboard event daemon
type Server struct {
	socketPath       string
	listener         net.Listener
	clients          map[*client]struct{}
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	broadcast        chan events.Event
	metrics          *Metrics
	sequenceCounter  atomic.Int64
	clientBufferSize int // Configurable client send queue size
	pingInterval     time.Duration
	staleAfter       time.Duration
	conns            sync.WaitGroup // Per-client reader and writer goroutines
	shutdownOnce     sync.Once
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithHeartbeat sets how often clients are pinged and how long a client may
// stay silent before it is dropped
func WithHeartbeat(ping, stale time.Duration) ServerOption {
	return func(s *Server) {
		if ping > 0 {
			s.pingInterval = ping
		}
		if stale > 0 {
			s.staleAfter = stale
		}
	}
}

// getEnvInt reads an integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a new daemon server listening on socketPath
func NewServer(socketPath string, opts ...ServerOption) (*Server, error) {
	// Ensure the directory exists
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Buffer sizes are tunable for performance testing
	broadcastBuffer := getEnvInt("PIPEBOARD_DAEMON_BROADCAST_BUFFER", 100)
	clientBuffer := getEnvInt("PIPEBOARD_DAEMON_CLIENT_BUFFER", 10)

	s := &Server{
		socketPath:       socketPath,
		listener:         listener,
		clients:          make(map[*client]struct{}),
		ctx:              ctx,
		cancel:           cancel,
		broadcast:        make(chan events.Event, broadcastBuffer),
		metrics:          NewMetrics(),
		clientBufferSize: clientBuffer,
		pingInterval:     30 * time.Second,
		staleAfter:       90 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SocketPath returns the listening socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Metrics exposes the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the daemon until ctx is cancelled, Shutdown is called or the
// listener fails. The accept, broadcast and health loops run in one errgroup.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return s.acceptLoop(gctx) })
	g.Go(func() error { s.broadcastLoop(gctx); return nil })
	g.Go(func() error { s.monitorHealth(gctx); return nil })
	g.Go(func() error {
		// Closing the listener unblocks Accept
		<-gctx.Done()
		return s.listener.Close()
	})

	err := g.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	if err != nil {
		slog.Error("daemon loop failed", "error", err)
	}

	return errors.Join(err, s.Shutdown())
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBufferSize),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		if s.ctx.Err() != nil {
			// Shutdown already swept the client list
			s.mu.Unlock()
			_ = conn.Close()
			return nil
		}
		s.clients[c] = struct{}{}
		s.conns.Add(2)
		s.mu.Unlock()
		s.updateClientCount()

		slog.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps sequence ids and fans events out to every client
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			s.metrics.IncBroadcasts()

			msg := events.Message{
				Version: events.ProtocolVersion,
				Type:    events.MsgEvent,
				Event:   &event,
			}

			s.mu.RLock()
			for c := range s.clients {
				// Non-blocking send - if client is slow, skip
				if !s.sendToClient(c, msg) {
					slog.Warn("client send queue full, event dropped", "sequence", event.SequenceID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer s.conns.Done()
	defer func() {
		s.removeClient(c)
		slog.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		// Check protocol version - log warning if mismatch
		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case events.MsgEvent:
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				slog.Warn("dropping event", "error", err)
			}

		case events.MsgPong:
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()

		case events.MsgStats:
			stats := s.metrics.Snapshot()
			s.deliver(c, events.Message{
				Version: events.ProtocolVersion,
				Type:    events.MsgStats,
				Stats:   &stats,
			})

		default:
			slog.Debug("ignoring unknown message", "type", msg.Type)
		}
	}
}

// clientWriter sends messages to a client
func (s *Server) clientWriter(c *client) {
	defer s.conns.Done()
	// A failed write ends the reader too, which removes the client
	defer c.conn.Close()

	encoder := json.NewEncoder(c.conn)
	for msg := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth sends ping messages and removes stale clients
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	ping := events.Message{
		Version: events.ProtocolVersion,
		Type:    events.MsgPing,
		Event:   &events.Event{Type: events.EventPing},
	}

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-ticker.C:
			// Collect stale clients under the read lock, remove them after
			var stale []*client
			s.mu.RLock()
			for c := range s.clients {
				c.mu.Lock()
				silent := now.Sub(c.lastPong)
				c.mu.Unlock()

				if silent > s.staleAfter {
					stale = append(stale, c)
					continue
				}
				if !s.sendToClient(c, ping) {
					slog.Debug("failed to send ping to client (queue full)")
				}
			}
			s.mu.RUnlock()

			for _, c := range stale {
				slog.Info("removing stale client", "silent_for", s.staleAfter)
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues an event for every connected client (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped()
		return ErrBroadcastFull
	}
}

// Shutdown gracefully shuts down the server. It waits for all per-client
// goroutines to exit.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")

		s.cancel()

		if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
			err = closeErr
		}

		s.mu.Lock()
		clients := s.clients
		s.clients = make(map[*client]struct{})
		s.mu.Unlock()

		for c := range clients {
			s.closeClient(c)
		}
		s.updateClientCount()
		s.conns.Wait()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove socket file", "error", removeErr)
		}
	})

	return err
}

// Helper methods

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	s.closeClient(c)
	s.updateClientCount()
}

// closeClient must only be called once c is out of the clients map, so no
// sender can race with closing the send channel
func (s *Server) closeClient(c *client) {
	if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		slog.Debug("error closing client connection", "error", err)
	}
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// deliver sends to c if it is still registered
func (s *Server) deliver(c *client, msg events.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[c]; ok {
		s.sendToClient(c, msg)
	}
}

// sendToClient attempts to send a message to a client (non-blocking).
// Callers hold s.mu for reading. Returns false if the queue is full.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		s.metrics.IncEventsDropped()
		return false
	}
}
