package sensor

import "github.com/thenoetrevino/pipeboard/internal/board/collision"

// Intent is a keyboard action already decoded from a key binding
type Intent int

const (
	IntentNone   Intent = iota
	IntentToggle        // Pick up the focused item, or drop the carried one
	IntentCancel        // Abandon the drag
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
)

// Focus is the keyboard-focused item and its geometry, used when picking up
type Focus struct {
	ItemID string
	Rect   collision.Rect
}

// Manager owns the pointer and keyboard sensors and makes sure only one of
// them drives a gesture at a time.
type Manager struct {
	pointer  *PointerSensor
	keyboard *KeyboardSensor
}

// NewManager creates a manager with both gesture sources
func NewManager(activationDistance int, getter CoordinateGetter) *Manager {
	return &Manager{
		pointer:  NewPointerSensor(activationDistance),
		keyboard: NewKeyboardSensor(getter),
	}
}

// Pointer exposes the pointer sensor (read-only use: thresholds, state)
func (m *Manager) Pointer() *PointerSensor {
	return m.pointer
}

// Busy reports whether any sensor has a gesture in progress
func (m *Manager) Busy() bool {
	return m.pointer.Active() || m.keyboard.Active()
}

// PointerDown forwards a press unless a keyboard drag is running
func (m *Manager) PointerDown(itemID string, at collision.Point, itemRect collision.Rect) []Event {
	if m.keyboard.Active() {
		return nil
	}
	return m.pointer.Down(itemID, at, itemRect)
}

// PointerMove forwards pointer motion
func (m *Manager) PointerMove(at collision.Point) []Event {
	return m.pointer.Move(at)
}

// PointerUp forwards a release
func (m *Manager) PointerUp(at collision.Point) []Event {
	return m.pointer.Up(at)
}

// Key maps a keyboard intent to drag events. focus is only consulted when
// picking up.
func (m *Manager) Key(intent Intent, focus Focus, targets []collision.Target) []Event {
	if m.pointer.Active() {
		if intent == IntentCancel {
			return m.pointer.Cancel()
		}
		return nil
	}

	switch intent {
	case IntentToggle:
		if m.keyboard.Active() {
			return m.keyboard.Drop()
		}
		return m.keyboard.Pickup(focus.ItemID, focus.Rect)
	case IntentCancel:
		return m.keyboard.Cancel()
	case IntentUp:
		return m.keyboard.Step(Up, targets)
	case IntentDown:
		return m.keyboard.Step(Down, targets)
	case IntentLeft:
		return m.keyboard.Step(Left, targets)
	case IntentRight:
		return m.keyboard.Step(Right, targets)
	default:
		return nil
	}
}

// Cancel aborts whatever gesture is in progress
func (m *Manager) Cancel() []Event {
	if m.keyboard.Active() {
		return m.keyboard.Cancel()
	}
	return m.pointer.Cancel()
}
