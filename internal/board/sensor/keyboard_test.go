package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/board/collision"
)

// boardTargets lays out two 10-wide columns with two 4-high cards in A and
// one card in B.
func boardTargets() []collision.Target {
	return []collision.Target{
		collision.ColumnTarget("A", collision.Rect{X: 0, Y: 0, W: 10, H: 20}),
		collision.ColumnTarget("B", collision.Rect{X: 10, Y: 0, W: 10, H: 20}),
		collision.ItemTarget("1", collision.Rect{X: 0, Y: 1, W: 10, H: 4}),
		collision.ItemTarget("2", collision.Rect{X: 0, Y: 5, W: 10, H: 4}),
		collision.ItemTarget("3", collision.Rect{X: 10, Y: 1, W: 10, H: 4}),
	}
}

func TestNearestInDirection(t *testing.T) {
	targets := boardTargets()
	card1 := targets[2].Rect

	down, ok := NearestInDirection(Down, card1, targets)
	require.True(t, ok)
	assert.Equal(t, targets[3].Rect, down, "down from card 1 lands on card 2")

	right, ok := NearestInDirection(Right, card1, targets)
	require.True(t, ok)
	assert.Equal(t, targets[4].Rect, right, "right from card 1 lands on card 3 at the same height")

	_, ok = NearestInDirection(Up, card1, targets)
	assert.False(t, ok, "nothing above the first card")

	_, ok = NearestInDirection(Left, card1, targets)
	assert.False(t, ok, "nothing left of the first column")
}

func TestNearestInDirection_EmptyColumnReachable(t *testing.T) {
	targets := []collision.Target{
		collision.ColumnTarget("A", collision.Rect{X: 0, Y: 0, W: 10, H: 20}),
		collision.ColumnTarget("B", collision.Rect{X: 10, Y: 0, W: 10, H: 20}),
		collision.ItemTarget("1", collision.Rect{X: 0, Y: 1, W: 10, H: 4}),
	}

	got, ok := NearestInDirection(Right, targets[2].Rect, targets)
	require.True(t, ok)

	hit, ok := collision.NewResolver(0).Closest(got, targets)
	require.True(t, ok)
	assert.Equal(t, collision.KindColumn, hit.Kind)
	assert.Equal(t, "B", hit.ID)
}

func TestKeyboard_PickupStepDrop(t *testing.T) {
	targets := boardTargets()
	s := NewKeyboardSensor(nil)

	events := s.Pickup("1", targets[2].Rect)
	require.Equal(t, []EventKind{DragStart, DragMove}, kinds(events))
	assert.Equal(t, SourceKeyboard, events[0].Source)
	assert.True(t, s.Active())

	assert.Empty(t, s.Pickup("2", targets[3].Rect), "second pickup is ignored")

	step := s.Step(Right, targets)
	require.Equal(t, []EventKind{DragMove}, kinds(step))
	assert.Equal(t, targets[4].Rect, step[0].Rect)

	assert.Empty(t, s.Step(Right, targets), "no target further right")

	end := s.Drop()
	require.Equal(t, []EventKind{DragEnd}, kinds(end))
	assert.False(t, end[0].Cancelled)
	assert.Equal(t, targets[4].Rect, end[0].Rect)
	assert.False(t, s.Active())
}

func TestKeyboard_Cancel(t *testing.T) {
	s := NewKeyboardSensor(nil)
	assert.Empty(t, s.Cancel(), "cancel without a drag emits nothing")

	s.Pickup("1", collision.Rect{W: 1, H: 1})
	events := s.Cancel()
	require.Len(t, events, 1)
	assert.True(t, events[0].Cancelled)
}

func TestKeyboard_CustomGetter(t *testing.T) {
	step := func(dir Direction, r collision.Rect, _ []collision.Target) (collision.Rect, bool) {
		if dir == Right {
			return r.Translate(collision.Point{X: 5}), true
		}
		return r, false
	}
	s := NewKeyboardSensor(step)
	s.Pickup("1", collision.Rect{W: 2, H: 2})

	events := s.Step(Right, nil)
	require.Len(t, events, 1)
	assert.Equal(t, collision.Rect{X: 5, W: 2, H: 2}, events[0].Rect)
}
