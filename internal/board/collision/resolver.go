// Package collision picks the drop target nearest to a dragged card.
package collision

// Kind tags what a drop target refers to.
type Kind int

const (
	KindNone   Kind = iota // No target
	KindColumn             // A stage's drop surface
	KindItem               // Another card's surface
)

// String returns a short name for logging
func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindItem:
		return "item"
	default:
		return "none"
	}
}

// Target is a droppable surface registered by the renderer.
// The Kind/ID pair is the tagged variant Column(id) | Item(id); the zero value
// is None.
type Target struct {
	Kind Kind
	ID   string
	Rect Rect
}

// IsNone reports whether t is the None variant.
func (t Target) IsNone() bool {
	return t.Kind == KindNone
}

// ColumnTarget builds a column drop surface.
func ColumnTarget(id string, r Rect) Target {
	return Target{Kind: KindColumn, ID: id, Rect: r}
}

// ItemTarget builds a card drop surface.
func ItemTarget(id string, r Rect) Target {
	return Target{Kind: KindItem, ID: id, Rect: r}
}

// Resolver finds the closest target by centre distance
type Resolver struct {
	// DetectionRange is the maximum centre-to-centre distance at which a
	// target is still considered. Zero means unlimited.
	DetectionRange int
}

// NewResolver creates a resolver with the given detection range (0 = unlimited).
func NewResolver(detectionRange int) Resolver {
	return Resolver{DetectionRange: max(detectionRange, 0)}
}

// Closest returns the target whose centre is nearest to the centre of active.
// Ties go to the target registered first, so callers should register columns
// left to right and cards top to bottom. Returns false when targets is empty
// or every target lies outside the detection range.
func (r Resolver) Closest(active Rect, targets []Target) (Target, bool) {
	best := -1
	bestDist := 0

	limit := -1
	if r.DetectionRange > 0 {
		// distances are in doubled coordinates, so the limit is (2*range)^2
		limit = 4 * r.DetectionRange * r.DetectionRange
	}

	for i, t := range targets {
		if t.IsNone() {
			continue
		}
		d := DistanceSquared(active, t.Rect)
		if limit >= 0 && d > limit {
			continue
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best == -1 {
		return Target{}, false
	}
	return targets[best], true
}
