package events

import "time"

// ProtocolVersion is stamped on every wire message
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Message types
const (
	MsgEvent = "event"
	MsgPing  = "ping"
	MsgPong  = "pong"
	MsgStats = "stats"
)

// Event represents a store change notification
type Event struct {
	Type       EventType `json:"type"`
	Source     string    `json:"source,omitempty"`   // Client that made the change
	ItemID     string    `json:"item_id,omitempty"`  // Empty when several items changed
	StageID    string    `json:"stage_id,omitempty"` // Destination stage for moves
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id,omitempty"` // Assigned by the daemon, monotonically increasing
}

// Stats is the daemon's reply to a stats request
type Stats struct {
	EventsSent       int64     `json:"events_sent"`
	EventsReceived   int64     `json:"events_received"`
	EventsDropped    int64     `json:"events_dropped"`
	Broadcasts       int64     `json:"broadcasts"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version int    `json:"version"`
	Type    string `json:"type"` // "event", "ping", "pong", "stats"
	Event   *Event `json:"event,omitempty"`
	Stats   *Stats `json:"stats,omitempty"`
}
