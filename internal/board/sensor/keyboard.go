package sensor

import "github.com/thenoetrevino/pipeboard/internal/board/collision"

// Direction is a keyboard movement direction
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// CoordinateGetter maps a keyboard step to the next geometry of the dragged
// element. It returns false when there is nowhere to go in that direction.
type CoordinateGetter func(dir Direction, current collision.Rect, targets []collision.Target) (collision.Rect, bool)

// KeyboardSensor drives a drag from discrete key presses. Keyboard drags have
// no activation distance: picking up starts the drag immediately.
type KeyboardSensor struct {
	getter CoordinateGetter

	active bool
	itemID string
	rect   collision.Rect
}

// NewKeyboardSensor creates a keyboard sensor. A nil getter uses NearestInDirection.
func NewKeyboardSensor(getter CoordinateGetter) *KeyboardSensor {
	if getter == nil {
		getter = NearestInDirection
	}
	return &KeyboardSensor{getter: getter}
}

// Active reports whether a keyboard drag is in progress
func (s *KeyboardSensor) Active() bool {
	return s.active
}

// Pickup starts a drag of the focused item at its current geometry
func (s *KeyboardSensor) Pickup(itemID string, rect collision.Rect) []Event {
	if s.active || itemID == "" {
		return nil
	}
	s.active = true
	s.itemID = itemID
	s.rect = rect
	return []Event{
		{Kind: DragStart, Source: SourceKeyboard, ItemID: itemID, Rect: rect},
		{Kind: DragMove, Source: SourceKeyboard, ItemID: itemID, Rect: rect},
	}
}

// Step moves the dragged geometry one step in dir using the coordinate getter
func (s *KeyboardSensor) Step(dir Direction, targets []collision.Target) []Event {
	if !s.active {
		return nil
	}
	next, ok := s.getter(dir, s.rect, targets)
	if !ok {
		return nil
	}
	s.rect = next
	return []Event{{Kind: DragMove, Source: SourceKeyboard, ItemID: s.itemID, Rect: next}}
}

// Drop ends the drag at the current geometry
func (s *KeyboardSensor) Drop() []Event {
	return s.end(false)
}

// Cancel ends the drag with no target
func (s *KeyboardSensor) Cancel() []Event {
	return s.end(true)
}

func (s *KeyboardSensor) end(cancelled bool) []Event {
	if !s.active {
		return nil
	}
	ev := Event{Kind: DragEnd, Source: SourceKeyboard, ItemID: s.itemID, Rect: s.rect, Cancelled: cancelled}
	s.active = false
	s.itemID = ""
	s.rect = collision.Rect{}
	return []Event{ev}
}

// NearestInDirection moves the dragged rect onto the centre of the nearest
// target lying in dir. Vertical steps only consider cards so that Up/Down
// walk through a stage; horizontal steps also consider stage surfaces so
// empty stages are reachable.
func NearestInDirection(dir Direction, current collision.Rect, targets []collision.Target) (collision.Rect, bool) {
	cx, cy := 2*current.X+current.W, 2*current.Y+current.H

	best := -1
	bestDist := 0
	for i, t := range targets {
		if t.IsNone() {
			continue
		}
		if (dir == Up || dir == Down) && t.Kind != collision.KindItem {
			continue
		}

		tx, ty := 2*t.Rect.X+t.Rect.W, 2*t.Rect.Y+t.Rect.H
		var ahead bool
		switch dir {
		case Up:
			ahead = ty < cy
		case Down:
			ahead = ty > cy
		case Left:
			ahead = tx < cx
		case Right:
			ahead = tx > cx
		}
		if !ahead {
			continue
		}

		dx, dy := tx-cx, ty-cy
		d := dx*dx + dy*dy
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best == -1 {
		return current, false
	}
	return current.CenteredAt(targets[best].Rect), true
}
