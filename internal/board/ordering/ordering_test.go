package ordering

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		list     []string
		from, to int
		want     []string
	}{
		{"forward by one", []string{"a", "b", "c", "d"}, 0, 1, []string{"b", "a", "c", "d"}},
		{"forward to end", []string{"a", "b", "c", "d"}, 0, 3, []string{"b", "c", "d", "a"}},
		{"backward to start", []string{"a", "b", "c", "d"}, 3, 0, []string{"d", "a", "b", "c"}},
		{"backward in middle", []string{"a", "b", "c", "d"}, 2, 1, []string{"a", "c", "b", "d"}},
		{"two elements swap", []string{"1", "2"}, 0, 1, []string{"2", "1"}},
		{"single element", []string{"x"}, 0, 0, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move(tt.list, tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Move(%v, %d, %d) mismatch (-want +got):\n%s", tt.list, tt.from, tt.to, diff)
			}
		})
	}
}

// TestMove_SameIndexIsIdentity checks move(list, i, i) == list for every valid i.
func TestMove_SameIndexIsIdentity(t *testing.T) {
	list := []int{5, 3, 9, 1, 7}
	for i := range list {
		got := Move(list, i, i)
		if diff := cmp.Diff(list, got); diff != "" {
			t.Errorf("Move(list, %d, %d) changed the list (-want +got):\n%s", i, i, diff)
		}
	}
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	list := []string{"a", "b", "c"}
	snapshot := append([]string(nil), list...)

	got := Move(list, 0, 2)

	assert.Equal(t, snapshot, list, "input slice must not be modified")
	assert.Equal(t, []string{"b", "c", "a"}, got)

	same := Move(list, 1, 1)
	same[0] = "z"
	assert.Equal(t, "a", list[0], "same-index move must still return a fresh slice")
}

// TestMove_PreservesElements checks every (from, to) pair keeps the same multiset.
func TestMove_PreservesElements(t *testing.T) {
	list := []int{0, 1, 2, 3, 4, 5}
	for from := range list {
		for to := range list {
			got := Move(list, from, to)
			assert.Len(t, got, len(list))
			assert.Equal(t, list[from], got[to], "moved element should land at destination (from=%d to=%d)", from, to)
			assert.ElementsMatch(t, list, got)
		}
	}
}

func TestMove_OutOfRangePanics(t *testing.T) {
	list := []int{1, 2, 3}

	assert.Panics(t, func() { Move(list, -1, 0) })
	assert.Panics(t, func() { Move(list, 3, 0) })
	assert.Panics(t, func() { Move(list, 0, 3) })
	assert.Panics(t, func() { Move(list, 0, -1) })
	assert.Panics(t, func() { Move([]int{}, 0, 0) })
}

func TestIndexOf(t *testing.T) {
	list := []string{"a", "b", "c"}

	assert.Equal(t, 1, IndexOf(list, func(s string) bool { return s == "b" }))
	assert.Equal(t, -1, IndexOf(list, func(s string) bool { return s == "z" }))
}
