package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceSquared(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 3, Y: 4, W: 2, H: 2}

	// centres (1,1) and (4,5): true distance 5, doubled-coordinate square = 4*25
	assert.Equal(t, 100, DistanceSquared(a, b))
	assert.Equal(t, 0, DistanceSquared(a, a))
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}

	assert.True(t, r.Contains(Point{X: 2, Y: 3}))
	assert.True(t, r.Contains(Point{X: 5, Y: 4}))
	assert.False(t, r.Contains(Point{X: 6, Y: 4}), "right edge is exclusive")
	assert.False(t, r.Contains(Point{X: 1, Y: 3}))

	assert.Equal(t, Rect{X: 5, Y: 1, W: 4, H: 2}, r.Translate(Point{X: 3, Y: -2}))

	card := Rect{W: 2, H: 2}
	assert.Equal(t, Rect{X: 3, Y: 3, W: 2, H: 2}, card.CenteredAt(Rect{X: 2, Y: 2, W: 4, H: 4}))
}

func TestClosest_PicksNearestCentre(t *testing.T) {
	targets := []Target{
		ColumnTarget("A", Rect{X: 0, Y: 0, W: 10, H: 40}),
		ColumnTarget("B", Rect{X: 10, Y: 0, W: 10, H: 40}),
		ItemTarget("3", Rect{X: 10, Y: 2, W: 10, H: 4}),
	}

	active := Rect{X: 11, Y: 2, W: 10, H: 4}

	got, ok := NewResolver(0).Closest(active, targets)
	require.True(t, ok)
	assert.Equal(t, KindItem, got.Kind)
	assert.Equal(t, "3", got.ID)
}

func TestClosest_TieBrokenByRegistrationOrder(t *testing.T) {
	left := ColumnTarget("A", Rect{X: 0, Y: 0, W: 4, H: 4})
	right := ColumnTarget("B", Rect{X: 8, Y: 0, W: 4, H: 4})
	active := Rect{X: 4, Y: 0, W: 4, H: 4} // exactly between

	got, ok := NewResolver(0).Closest(active, []Target{left, right})
	require.True(t, ok)
	assert.Equal(t, "A", got.ID)

	got, ok = NewResolver(0).Closest(active, []Target{right, left})
	require.True(t, ok)
	assert.Equal(t, "B", got.ID)
}

func TestClosest_DetectionRange(t *testing.T) {
	far := ColumnTarget("A", Rect{X: 100, Y: 0, W: 4, H: 4})
	active := Rect{X: 0, Y: 0, W: 4, H: 4}

	_, ok := NewResolver(10).Closest(active, []Target{far})
	assert.False(t, ok, "target 100 cells away should be outside a range of 10")

	_, ok = NewResolver(100).Closest(active, []Target{far})
	assert.True(t, ok, "target exactly at the range limit is detected")

	_, ok = NewResolver(0).Closest(active, []Target{far})
	assert.True(t, ok, "zero range means unlimited")
}

func TestClosest_NoTargets(t *testing.T) {
	_, ok := NewResolver(0).Closest(Rect{W: 1, H: 1}, nil)
	assert.False(t, ok)

	_, ok = NewResolver(0).Closest(Rect{W: 1, H: 1}, []Target{{}})
	assert.False(t, ok, "None targets are skipped")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "column", KindColumn.String())
	assert.Equal(t, "item", KindItem.String())
	assert.Equal(t, "none", KindNone.String())
}
