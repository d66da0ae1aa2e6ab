package sensor

import "github.com/thenoetrevino/pipeboard/internal/board/collision"

type pointerState int

const (
	pointerIdle pointerState = iota
	pointerPressed
	pointerDragging
)

// PointerSensor recognises drags from mouse input. A press only becomes a
// drag once the pointer has moved at least the activation distance from
// where it went down; releasing earlier is reported as a click.
type PointerSensor struct {
	activation int

	state  pointerState
	itemID string
	origin collision.Point
	rect   collision.Rect // item geometry at press time
}

// NewPointerSensor creates a pointer sensor. Non-positive distances fall back
// to DefaultActivationDistance.
func NewPointerSensor(activationDistance int) *PointerSensor {
	if activationDistance <= 0 {
		activationDistance = DefaultActivationDistance
	}
	return &PointerSensor{activation: activationDistance}
}

// ActivationDistance returns the configured threshold
func (s *PointerSensor) ActivationDistance() int {
	return s.activation
}

// Active reports whether a press or drag is in progress
func (s *PointerSensor) Active() bool {
	return s.state != pointerIdle
}

// Dragging reports whether the press has crossed the activation distance
func (s *PointerSensor) Dragging() bool {
	return s.state == pointerDragging
}

// Down records a press on an item. A press while another gesture is in
// progress is ignored.
func (s *PointerSensor) Down(itemID string, at collision.Point, itemRect collision.Rect) []Event {
	if s.state != pointerIdle || itemID == "" {
		return nil
	}
	s.state = pointerPressed
	s.itemID = itemID
	s.origin = at
	s.rect = itemRect
	return nil
}

// Move tracks pointer motion. Crossing the activation distance emits
// DragStart followed by DragMove; every later motion emits DragMove.
func (s *PointerSensor) Move(at collision.Point) []Event {
	switch s.state {
	case pointerPressed:
		if !s.crossed(at) {
			return nil
		}
		s.state = pointerDragging
		return []Event{s.startEvent(), s.moveEvent(at)}
	case pointerDragging:
		return []Event{s.moveEvent(at)}
	default:
		return nil
	}
}

// Up ends the gesture. Below the activation distance this is a click
// (Activate); otherwise exactly one DragEnd is emitted.
func (s *PointerSensor) Up(at collision.Point) []Event {
	defer s.reset()

	switch s.state {
	case pointerPressed:
		if !s.crossed(at) {
			return []Event{{Kind: Activate, Source: SourcePointer, ItemID: s.itemID}}
		}
		// released past the threshold without intermediate motion
		return []Event{s.startEvent(), s.moveEvent(at), s.endEvent(at, false)}
	case pointerDragging:
		return []Event{s.endEvent(at, false)}
	default:
		return nil
	}
}

// Cancel aborts the gesture. A drag in progress ends with a cancelled
// DragEnd; a plain press is dropped silently.
func (s *PointerSensor) Cancel() []Event {
	defer s.reset()

	if s.state != pointerDragging {
		return nil
	}
	return []Event{s.endEvent(s.origin, true)}
}

func (s *PointerSensor) crossed(at collision.Point) bool {
	d := at.Sub(s.origin)
	return d.X*d.X+d.Y*d.Y >= s.activation*s.activation
}

func (s *PointerSensor) startEvent() Event {
	return Event{Kind: DragStart, Source: SourcePointer, ItemID: s.itemID, Rect: s.rect}
}

func (s *PointerSensor) moveEvent(at collision.Point) Event {
	return Event{Kind: DragMove, Source: SourcePointer, ItemID: s.itemID, Rect: s.rect.Translate(at.Sub(s.origin))}
}

func (s *PointerSensor) endEvent(at collision.Point, cancelled bool) Event {
	return Event{
		Kind:      DragEnd,
		Source:    SourcePointer,
		ItemID:    s.itemID,
		Rect:      s.rect.Translate(at.Sub(s.origin)),
		Cancelled: cancelled,
	}
}

func (s *PointerSensor) reset() {
	s.state = pointerIdle
	s.itemID = ""
	s.origin = collision.Point{}
	s.rect = collision.Rect{}
}
