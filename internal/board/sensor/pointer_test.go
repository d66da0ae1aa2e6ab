package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/board/collision"
)

var cardRect = collision.Rect{X: 2, Y: 4, W: 20, H: 5}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// TestPointer_BelowThresholdIsClick ensures a release one unit short of the
// activation distance is reported as a click, never a drag.
func TestPointer_BelowThresholdIsClick(t *testing.T) {
	s := NewPointerSensor(8)
	start := collision.Point{X: 10, Y: 5}

	assert.Empty(t, s.Down("1", start, cardRect))
	assert.Empty(t, s.Move(collision.Point{X: 17, Y: 5}), "7 units must not activate")

	events := s.Up(collision.Point{X: 17, Y: 5})
	require.Len(t, events, 1)
	assert.Equal(t, Activate, events[0].Kind)
	assert.Equal(t, "1", events[0].ItemID)
	assert.False(t, s.Active())
}

// TestPointer_AtThresholdStartsDrag ensures exactly the activation distance
// starts a drag session.
func TestPointer_AtThresholdStartsDrag(t *testing.T) {
	s := NewPointerSensor(8)
	start := collision.Point{X: 10, Y: 5}

	s.Down("1", start, cardRect)
	events := s.Move(collision.Point{X: 18, Y: 5})

	require.Equal(t, []EventKind{DragStart, DragMove}, kinds(events))
	assert.Equal(t, "1", events[0].ItemID)
	assert.Equal(t, cardRect, events[0].Rect)
	assert.Equal(t, cardRect.Translate(collision.Point{X: 8}), events[1].Rect)
	assert.True(t, s.Dragging())
}

func TestPointer_DiagonalUsesEuclideanDistance(t *testing.T) {
	s := NewPointerSensor(8)
	s.Down("1", collision.Point{}, cardRect)

	// (5,5) is ~7.07 away
	assert.Empty(t, s.Move(collision.Point{X: 5, Y: 5}))
	// (6,6) is ~8.49 away
	assert.Equal(t, []EventKind{DragStart, DragMove}, kinds(s.Move(collision.Point{X: 6, Y: 6})))
}

func TestPointer_FullDrag(t *testing.T) {
	s := NewPointerSensor(8)
	s.Down("1", collision.Point{X: 0, Y: 0}, cardRect)
	s.Move(collision.Point{X: 10, Y: 0})

	moves := s.Move(collision.Point{X: 30, Y: 2})
	require.Equal(t, []EventKind{DragMove}, kinds(moves))
	assert.Equal(t, collision.Rect{X: 32, Y: 6, W: 20, H: 5}, moves[0].Rect)

	end := s.Up(collision.Point{X: 30, Y: 2})
	require.Equal(t, []EventKind{DragEnd}, kinds(end))
	assert.False(t, end[0].Cancelled)
	assert.Equal(t, collision.Rect{X: 32, Y: 6, W: 20, H: 5}, end[0].Rect)

	assert.False(t, s.Active())
	assert.Empty(t, s.Up(collision.Point{}), "second release emits nothing")
}

func TestPointer_ReleaseFarWithoutMotion(t *testing.T) {
	s := NewPointerSensor(8)
	s.Down("1", collision.Point{}, cardRect)

	events := s.Up(collision.Point{X: 20})
	assert.Equal(t, []EventKind{DragStart, DragMove, DragEnd}, kinds(events))
}

func TestPointer_Cancel(t *testing.T) {
	s := NewPointerSensor(8)

	s.Down("1", collision.Point{}, cardRect)
	assert.Empty(t, s.Cancel(), "cancelling a plain press emits nothing")
	assert.False(t, s.Active())

	s.Down("1", collision.Point{}, cardRect)
	s.Move(collision.Point{X: 9})
	events := s.Cancel()
	require.Equal(t, []EventKind{DragEnd}, kinds(events))
	assert.True(t, events[0].Cancelled)
}

func TestPointer_SecondPressIgnored(t *testing.T) {
	s := NewPointerSensor(8)
	s.Down("1", collision.Point{}, cardRect)
	s.Down("2", collision.Point{X: 50}, cardRect)

	events := s.Up(collision.Point{})
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ItemID)
}

func TestPointer_DefaultActivationDistance(t *testing.T) {
	assert.Equal(t, DefaultActivationDistance, NewPointerSensor(0).ActivationDistance())
	assert.Equal(t, 3, NewPointerSensor(3).ActivationDistance())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "drag-start", DragStart.String())
	assert.Equal(t, "drag-move", DragMove.String())
	assert.Equal(t, "drag-end", DragEnd.String())
	assert.Equal(t, "activate", Activate.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
