// Package sensor turns raw pointer and keyboard input into drag intents.
// Sensors hold gesture state only; they know nothing about the board.
package sensor

import "github.com/thenoetrevino/pipeboard/internal/board/collision"

// DefaultActivationDistance is how far the pointer must travel from its
// down position before a press becomes a drag
const DefaultActivationDistance = 8

// EventKind indicates what kind of gesture transition occurred
type EventKind int

const (
	DragStart EventKind = iota + 1 // Gesture recognised as a drag
	DragMove                       // Dragged geometry changed
	DragEnd                        // Gesture finished (release, drop or cancel)
	Activate                       // Press released below the activation distance (a click)
)

// String returns a short name for logging
func (k EventKind) String() string {
	switch k {
	case DragStart:
		return "drag-start"
	case DragMove:
		return "drag-move"
	case DragEnd:
		return "drag-end"
	case Activate:
		return "activate"
	default:
		return "unknown"
	}
}

// Source identifies which sensor raised an event
type Source int

const (
	SourcePointer Source = iota
	SourceKeyboard
)

// Event is a drag intent raised by a sensor
type Event struct {
	Kind      EventKind
	Source    Source
	ItemID    string         // Active item (DragStart, Activate)
	Rect      collision.Rect // Current geometry of the dragged element (DragMove, DragEnd)
	Cancelled bool           // DragEnd only: gesture was cancelled, resolve to no target
}

// String returns a short name for logging
func (s Source) String() string {
	if s == SourceKeyboard {
		return "keyboard"
	}
	return "pointer"
}
