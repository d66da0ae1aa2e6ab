// Package reconcile decides how an authoritative snapshot from the store
// replaces the board's locally held, optimistically edited item list.
package reconcile

import (
	"fmt"
	"time"

	"github.com/thenoetrevino/pipeboard/internal/models"
)

// Policy names as used in configuration
const (
	PolicyLastSnapshotWins = "last_snapshot_wins"
	PolicyPreservePending  = "preserve_pending"
)

// Policy turns a snapshot (plus whatever is still pending locally) into the
// new presentation item list. Implementations must not retain snapshot.
type Policy interface {
	Name() string
	Reconcile(snapshot []models.Item, pending *Tracker) []models.Item
}

// ParsePolicy returns the policy for a configuration name. The empty string
// selects LastSnapshotWins.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", PolicyLastSnapshotWins:
		return LastSnapshotWins{}, nil
	case PolicyPreservePending:
		return PreservePending{}, nil
	default:
		return nil, fmt.Errorf("unknown sync policy %q", name)
	}
}

// LastSnapshotWins replaces local state wholesale. Any optimistic change the
// snapshot does not reflect yet is lost until the store catches up.
type LastSnapshotWins struct{}

func (LastSnapshotWins) Name() string { return PolicyLastSnapshotWins }

func (LastSnapshotWins) Reconcile(snapshot []models.Item, pending *Tracker) []models.Item {
	if pending != nil {
		pending.Reset()
	}
	return models.CloneItems(snapshot)
}

// PreservePending re-applies unconfirmed optimistic stage changes on top of
// the snapshot. A change is confirmed, and forgotten, once the snapshot shows
// the item in the target stage; it is also forgotten when the item is absent
// from the snapshot or the change is older than MaxAge (0 = no limit).
type PreservePending struct {
	MaxAge time.Duration
}

func (PreservePending) Name() string { return PolicyPreservePending }

func (p PreservePending) Reconcile(snapshot []models.Item, pending *Tracker) []models.Item {
	out := models.CloneItems(snapshot)
	if pending == nil || pending.Len() == 0 {
		return out
	}

	seen := make(map[string]bool, len(out))
	var reapplied []Pending
	now := pending.now()
	for i := range out {
		item := &out[i]
		seen[item.ID] = true

		change, ok := pending.Get(item.ID)
		if !ok {
			continue
		}
		if item.StageID == change.StageID {
			pending.Forget(item.ID)
			continue
		}
		if p.MaxAge > 0 && now.Sub(change.Since) > p.MaxAge {
			pending.Forget(item.ID)
			continue
		}
		reapplied = append(reapplied, change)
	}

	for _, change := range pending.All() {
		if !seen[change.ItemID] {
			pending.Forget(change.ItemID)
		}
	}

	// the optimistic view placed these at the end of their target stage
	for _, change := range reapplied {
		out = models.MoveToStageEnd(out, change.ItemID, change.StageID)
	}

	return out
}
