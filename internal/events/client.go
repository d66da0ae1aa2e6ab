package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Client represents a connection to the pipeboard daemon for live updates.
// It handles event sending, receiving, batching and reconnection.
type Client struct {
	id         string
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex
	closed     bool // Prevent double-close

	// Batching configuration
	eventQueue chan Event
	debounce   time.Duration

	// Reconnection configuration
	maxRetries  int
	baseDelay   time.Duration
	readTimeout time.Duration

	// Event tracking, owned by the listen goroutine
	lastSequence int64

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Batching goroutine
	batcherStarted bool
	batcherDone    chan struct{}
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithDebounce sets the batching window
func WithDebounce(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithReconnect sets the reconnection attempts and the first backoff delay
func WithReconnect(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// WithReadTimeout sets how long Listen waits for any message (pings
// included) before treating the connection as dead
func WithReadTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

// NewClient creates a new event client but does not connect.
// The socket path should be the full path to the Unix domain socket.
// The debounce window defaults to 100ms, or PIPEBOARD_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string, opts ...ClientOption) (*Client, error) {
	debounceMs := 100
	if envVal := os.Getenv("PIPEBOARD_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		id:          uuid.NewString(),
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		readTimeout: 60 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ID identifies this client as the Source of the events it sends
func (c *Client) ID() string {
	return c.id
}

// Connect establishes a connection to the daemon socket.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	// Dial the Unix domain socket
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", ClassifyDaemonError(err))
	}

	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	// Start the batching goroutine on first connect only
	if !c.batcherStarted {
		c.batcherStarted = true
		go c.startBatcher()
	}

	return nil
}

// SendEvent queues an event to be sent to the daemon.
// Events are batched and sent in bursts within the debounce window.
// Returns ErrQueueFull if the queue is full (non-blocking send).
func (c *Client) SendEvent(event Event) error {
	if c.ctx.Err() != nil {
		return ErrClosed
	}
	if event.Type == "" {
		event.Type = EventBoardChanged
	}
	if event.Source == "" {
		event.Source = c.id
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// startBatcher runs in a goroutine and batches events from the queue.
// It sends at most one event every debounce duration. When several items
// changed in one window the item details are cleared.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending *Event

	merge := func(ev Event) {
		if pending == nil {
			pending = &ev
			return
		}
		if pending.ItemID != ev.ItemID || pending.StageID != ev.StageID {
			pending.ItemID = ""
			pending.StageID = ""
		}
		pending.Timestamp = ev.Timestamp
	}

	flushPending := func() {
		if pending == nil {
			return
		}
		if err := c.send(Message{Type: MsgEvent, Event: pending}); err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "error", err)
		}
		pending = nil
	}

	for {
		select {
		case <-c.ctx.Done():
			// Flush whatever is still queued before exiting
			for {
				select {
				case ev := <-c.eventQueue:
					merge(ev)
				default:
					flushPending()
					return
				}
			}

		case ev := <-c.eventQueue:
			merge(ev)

		case <-ticker.C:
			flushPending()
		}
	}
}

// send writes one message to the daemon socket.
func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	// Set a short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msg.Version = ProtocolVersion
	return c.encoder.Encode(msg)
}

// Listen starts listening for events from the daemon.
// It returns a channel that receives events and handles reconnection automatically.
// The channel is closed when ctx is done, the client is closed or reconnection fails.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

// listenLoop reads events from the daemon and handles reconnection.
func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	// Unblock a pending read as soon as the caller gives up
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn != nil {
			_ = c.conn.SetReadDeadline(time.Now())
		}
	})
	defer stop()

	for {
		err := c.readEvents(ctx, eventChan)
		if ctx.Err() != nil || c.ctx.Err() != nil {
			return
		}

		slog.Warn("connection to daemon lost, reconnecting", "error", err)
		if !c.reconnect(ctx) {
			slog.Warn("failed to reconnect to daemon, giving up", "attempts", c.maxRetries)
			return
		}
		// A restarted daemon starts its sequence over
		c.lastSequence = 0
		slog.Info("reconnected to daemon")
	}
}

// readEvents reads messages from the socket and sends them to the event channel.
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		// Set read deadline to detect hung connections
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		if msg.Version != 0 && msg.Version != ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", ProtocolVersion)
		}

		switch msg.Type {
		case MsgEvent:
			if msg.Event == nil {
				continue
			}
			// Basic duplicate detection
			if msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case MsgPing:
			if err := c.send(Message{Type: MsgPong}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		}
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, ErrNotConnected)
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
			if err := c.Connect(ctx); err == nil {
				slog.Debug("reconnected to daemon", "attempt", i+1, "max_retries", c.maxRetries)
				return true
			}

			slog.Debug("reconnection attempt failed", "attempt", i+1, "max_retries", c.maxRetries, "retry_delay", delay)
			delay *= 2 // Exponential backoff: 1s, 2s, 4s, 8s, 16s
		}
	}

	return false
}

// Close closes the connection to the daemon and stops all goroutines.
// Queued events are flushed first.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	started := c.batcherStarted
	c.mu.Unlock()

	c.cancel()

	// Wait for batcher to finish (it flushes pending events)
	if started {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}

	return nil
}

// QueryStats asks the daemon at socketPath for its metrics over a
// short-lived connection.
func QueryStats(ctx context.Context, socketPath string) (*Stats, error) {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, ClassifyDaemonError(err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(2 * time.Second)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if err := json.NewEncoder(conn).Encode(Message{Version: ProtocolVersion, Type: MsgStats}); err != nil {
		return nil, fmt.Errorf("sending stats request: %w", err)
	}

	decoder := json.NewDecoder(conn)
	for {
		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return nil, fmt.Errorf("reading stats reply: %w", err)
		}
		if msg.Type == MsgStats && msg.Stats != nil {
			return msg.Stats, nil
		}
	}
}
