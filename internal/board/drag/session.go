// Package drag implements the drag session state machine and drop
// resolution.
package drag

import (
	"errors"

	"github.com/thenoetrevino/pipeboard/internal/board/collision"
)

// Errors returned by Machine transitions
var (
	// ErrSessionActive indicates a drag-start while another session is alive
	ErrSessionActive = errors.New("drag session already active")

	// ErrNoSession indicates a move or end with no session alive
	ErrNoSession = errors.New("no active drag session")

	// ErrUnknownItem indicates a drag-start for an item that is not on the board
	ErrUnknownItem = errors.New("item is not on the board")
)

// State is the machine state
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Lookup answers the board questions resolution needs. *columns.Model
// satisfies it.
type Lookup interface {
	StageOf(itemID string) (string, bool)
	IndexOf(itemID string) (int, bool)
	HasColumn(id string) bool
}

// Session is the state of one in-progress gesture
type Session struct {
	ActiveItemID  string
	OriginStageID string           // stage holding the item when the drag started
	LastTarget    collision.Target // live highlight; None when nothing is in range
}

// Machine owns at most one Session at a time
type Machine struct {
	resolver collision.Resolver
	session  *Session
}

// NewMachine creates an idle machine
func NewMachine(resolver collision.Resolver) *Machine {
	return &Machine{resolver: resolver}
}

// State returns Idle or Dragging
func (m *Machine) State() State {
	if m.session == nil {
		return Idle
	}
	return Dragging
}

// Session returns a copy of the live session
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Start opens a session for itemID, capturing its current stage as origin
func (m *Machine) Start(itemID string, lookup Lookup) error {
	if m.session != nil {
		return ErrSessionActive
	}
	origin, ok := lookup.StageOf(itemID)
	if !ok {
		return ErrUnknownItem
	}
	m.session = &Session{ActiveItemID: itemID, OriginStageID: origin}
	return nil
}

// Move updates the live highlight from the dragged geometry. It never
// touches item data. If the active item has disappeared from the board the
// session ends and Move returns false.
func (m *Machine) Move(rect collision.Rect, targets []collision.Target, lookup Lookup) (bool, error) {
	if m.session == nil {
		return false, ErrNoSession
	}
	if _, ok := lookup.StageOf(m.session.ActiveItemID); !ok {
		m.session = nil
		return false, nil
	}
	target, ok := m.resolver.Closest(rect, targets)
	if !ok {
		target = collision.Target{}
	}
	m.session.LastTarget = target
	return true, nil
}

// End resolves the drop at rect and destroys the session. A cancelled
// gesture resolves against no target.
func (m *Machine) End(rect collision.Rect, targets []collision.Target, cancelled bool, lookup Lookup) (Outcome, error) {
	if m.session == nil {
		return Outcome{}, ErrNoSession
	}
	var target collision.Target
	if !cancelled {
		if t, ok := m.resolver.Closest(rect, targets); ok {
			target = t
		}
	}
	return m.EndOver(target, lookup)
}

// EndOver resolves the drop over an already-known target and destroys the session
func (m *Machine) EndOver(target collision.Target, lookup Lookup) (Outcome, error) {
	if m.session == nil {
		return Outcome{}, ErrNoSession
	}
	s := *m.session
	m.session = nil
	return Resolve(s, target, lookup), nil
}

// Cancel destroys the session without resolving it
func (m *Machine) Cancel() bool {
	alive := m.session != nil
	m.session = nil
	return alive
}

// Resolve decides what dropping the session's item over target means.
func Resolve(s Session, target collision.Target, lookup Lookup) Outcome {
	abort := Outcome{Kind: Abort, ItemID: s.ActiveItemID, Target: target}

	if target.IsNone() {
		return abort
	}
	if target.Kind == collision.KindItem && target.ID == s.ActiveItemID {
		return abort
	}
	current, ok := lookup.StageOf(s.ActiveItemID)
	if !ok {
		return abort
	}

	var dest string
	switch target.Kind {
	case collision.KindColumn:
		if !lookup.HasColumn(target.ID) {
			return abort
		}
		dest = target.ID
	case collision.KindItem:
		dest, ok = lookup.StageOf(target.ID)
		if !ok {
			return abort
		}
	default:
		return abort
	}

	if dest != s.OriginStageID {
		return Outcome{
			Kind:      StageChange,
			ItemID:    s.ActiveItemID,
			Target:    target,
			FromStage: s.OriginStageID,
			ToStage:   dest,
		}
	}

	if target.Kind == collision.KindColumn {
		return Outcome{Kind: NoOp, ItemID: s.ActiveItemID, Target: target, FromStage: dest, ToStage: dest}
	}

	// Same stage, over another card: reorder. If a snapshot moved the item
	// out of its origin stage mid-drag there is nothing to reorder.
	if current != dest {
		return abort
	}
	from, _ := lookup.IndexOf(s.ActiveItemID)
	to, _ := lookup.IndexOf(target.ID)
	return Outcome{
		Kind:      Reorder,
		ItemID:    s.ActiveItemID,
		Target:    target,
		FromStage: dest,
		ToStage:   dest,
		FromIndex: from,
		ToIndex:   to,
	}
}
