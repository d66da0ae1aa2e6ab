package reconcile

import (
	"sort"
	"time"
)

// Pending is an optimistic stage change that no snapshot has confirmed yet
type Pending struct {
	ItemID  string
	StageID string
	Since   time.Time
}

// Tracker records optimistic stage changes per item. The latest change to an
// item replaces any earlier one.
type Tracker struct {
	pending map[string]Pending
	now     func() time.Time
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		pending: make(map[string]Pending),
		now:     time.Now,
	}
}

// Record notes that itemID was optimistically moved to stageID
func (t *Tracker) Record(itemID, stageID string) {
	t.pending[itemID] = Pending{ItemID: itemID, StageID: stageID, Since: t.now()}
}

// Forget drops the pending change for itemID, e.g. when persistence failed
func (t *Tracker) Forget(itemID string) {
	delete(t.pending, itemID)
}

// Get returns the pending change for itemID
func (t *Tracker) Get(itemID string) (Pending, bool) {
	p, ok := t.pending[itemID]
	return p, ok
}

// Reset drops every pending change
func (t *Tracker) Reset() {
	t.pending = make(map[string]Pending)
}

// Len returns the number of pending changes
func (t *Tracker) Len() int {
	return len(t.pending)
}

// All returns the pending changes ordered by item ID
func (t *Tracker) All() []Pending {
	out := make([]Pending, 0, len(t.pending))
	for _, p := range t.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
