// Package board is the pipeline board engine: it owns the item list,
// partitions it into stages, runs drag sessions from pointer and keyboard
// input and applies their results.
//
// A Controller is not safe for concurrent use. Drive it from a single
// goroutine, such as a Bubble Tea Update loop.
package board

import (
	"errors"

	"github.com/thenoetrevino/pipeboard/internal/board/collision"
	"github.com/thenoetrevino/pipeboard/internal/board/columns"
	"github.com/thenoetrevino/pipeboard/internal/board/drag"
	"github.com/thenoetrevino/pipeboard/internal/board/ordering"
	"github.com/thenoetrevino/pipeboard/internal/board/reconcile"
	"github.com/thenoetrevino/pipeboard/internal/board/sensor"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// Overlay is the floating duplicate of the dragged card
type Overlay struct {
	Item   models.Item
	Rect   collision.Rect   // where to draw it
	Target collision.Target // current highlight, None if out of range
}

// Controller owns the board's presentation state. The item list is only
// changed by drag resolution and snapshot replacement; accessors return copies.
type Controller struct {
	cols  []models.Column
	items []models.Item
	view  *columns.Model

	sensors *sensor.Manager
	machine *drag.Machine
	targets []collision.Target
	overlay *Overlay

	pending *reconcile.Tracker
	opts    options
}

// New creates a controller for the given columns and initial items
func New(cols []models.Column, items []models.Item, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		cols:    append([]models.Column(nil), cols...),
		items:   models.CloneItems(items),
		sensors: sensor.NewManager(o.activationDistance, o.coordinates),
		machine: drag.NewMachine(collision.NewResolver(o.detectionRange)),
		pending: reconcile.NewTracker(),
		opts:    o,
	}
	c.rebuild()
	return c
}

func (c *Controller) rebuild() {
	c.view = columns.Partition(c.cols, c.items)
}

// ============================================================================
// Read access
// ============================================================================

// Columns returns the rendered columns with their items
func (c *Controller) Columns() []columns.View {
	return c.view.Views()
}

// Partition returns the current immutable partition for lookups
func (c *Controller) Partition() *columns.Model {
	return c.view
}

// ColumnList returns the configured columns
func (c *Controller) ColumnList() []models.Column {
	return append([]models.Column(nil), c.cols...)
}

// Items returns a copy of the full item list, including items that are not
// rendered because their stage is unknown
func (c *Controller) Items() []models.Item {
	return models.CloneItems(c.items)
}

// Dragging reports whether a drag session is alive
func (c *Controller) Dragging() bool {
	return c.machine.State() == drag.Dragging
}

// Busy reports whether a gesture (press, drag) is in progress
func (c *Controller) Busy() bool {
	return c.sensors.Busy() || c.Dragging()
}

// Session returns the live drag session
func (c *Controller) Session() (drag.Session, bool) {
	return c.machine.Session()
}

// Highlight returns the target under the dragged card
func (c *Controller) Highlight() (collision.Target, bool) {
	s, ok := c.machine.Session()
	if !ok || s.LastTarget.IsNone() {
		return collision.Target{}, false
	}
	return s.LastTarget, true
}

// Overlay returns the dragged card duplicate while a session is alive
func (c *Controller) Overlay() (Overlay, bool) {
	if c.overlay == nil {
		return Overlay{}, false
	}
	o := *c.overlay
	o.Item = o.Item.Clone()
	return o, true
}

// Pending returns optimistic stage changes not yet confirmed by a snapshot
func (c *Controller) Pending() []reconcile.Pending {
	return c.pending.All()
}

// ActivationDistance returns the pointer threshold in use
func (c *Controller) ActivationDistance() int {
	return c.sensors.Pointer().ActivationDistance()
}

// ============================================================================
// Layout and external state
// ============================================================================

// SetColumns replaces the column list
func (c *Controller) SetColumns(cols []models.Column) {
	c.cols = append([]models.Column(nil), cols...)
	c.rebuild()
}

// SetTargets registers the measured drop surfaces. Register columns left to
// right, then cards top to bottom, so collision ties resolve predictably.
func (c *Controller) SetTargets(targets []collision.Target) {
	c.targets = append(c.targets[:0], targets...)
}

// Targets returns the registered drop surfaces
func (c *Controller) Targets() []collision.Target {
	return append([]collision.Target(nil), c.targets...)
}

// ApplySnapshot replaces the item list with an authoritative snapshot
// according to the configured policy. A live session is left alone; if its
// item is gone it resolves to a no-op on its next event.
func (c *Controller) ApplySnapshot(items []models.Item) {
	c.items = c.opts.policy.Reconcile(items, c.pending)
	c.rebuild()
	c.opts.logger.Debug("snapshot applied",
		"policy", c.opts.policy.Name(),
		"items", len(c.items),
		"dropped", c.view.Dropped(),
		"pending", c.pending.Len(),
		"dragging", c.Dragging())
}

// RejectMove forgets the optimistic change for itemID, typically after the
// store refused to persist it. The next snapshot then restores the truth.
func (c *Controller) RejectMove(itemID string) {
	c.pending.Forget(itemID)
}

// ============================================================================
// Input
// ============================================================================

// PointerDown records a press on a card
func (c *Controller) PointerDown(itemID string, at collision.Point, itemRect collision.Rect) {
	c.dispatch(c.sensors.PointerDown(itemID, at, itemRect))
}

// PointerMove tracks pointer motion
func (c *Controller) PointerMove(at collision.Point) {
	c.dispatch(c.sensors.PointerMove(at))
}

// PointerUp releases the pointer
func (c *Controller) PointerUp(at collision.Point) {
	c.dispatch(c.sensors.PointerUp(at))
}

// Key applies a keyboard intent. focusItemID is the card that has keyboard
// focus; it is only used when picking up.
func (c *Controller) Key(intent sensor.Intent, focusItemID string) {
	focus := sensor.Focus{ItemID: focusItemID}
	if r, ok := c.targetRect(collision.KindItem, focusItemID); ok {
		focus.Rect = r
	}
	c.dispatch(c.sensors.Key(intent, focus, c.targets))
}

// Cancel aborts any gesture in progress
func (c *Controller) Cancel() {
	c.dispatch(c.sensors.Cancel())
}

func (c *Controller) targetRect(kind collision.Kind, id string) (collision.Rect, bool) {
	for _, t := range c.targets {
		if t.Kind == kind && t.ID == id {
			return t.Rect, true
		}
	}
	return collision.Rect{}, false
}

func (c *Controller) dispatch(events []sensor.Event) {
	for _, ev := range events {
		c.handle(ev)
	}
}

func (c *Controller) handle(ev sensor.Event) {
	log := c.opts.logger

	switch ev.Kind {
	case sensor.Activate:
		item, ok := c.view.Item(ev.ItemID)
		if !ok {
			return
		}
		log.Debug("item activated", "item_id", ev.ItemID)
		if c.opts.onActivate != nil {
			c.opts.onActivate(item)
		}

	case sensor.DragStart:
		if err := c.machine.Start(ev.ItemID, c.view); err != nil {
			log.Debug("drag start rejected", "item_id", ev.ItemID, "error", err)
			return
		}
		item, _ := c.view.Item(ev.ItemID)
		c.overlay = &Overlay{Item: item, Rect: ev.Rect}
		log.Debug("drag started", "item_id", ev.ItemID, "source", ev.Source)

	case sensor.DragMove:
		alive, err := c.machine.Move(ev.Rect, c.targets, c.view)
		if err != nil {
			return
		}
		if !alive {
			log.Debug("drag item vanished, session dropped", "item_id", ev.ItemID)
			c.overlay = nil
			// the gesture may still be live in a sensor; its remaining
			// events find no session and are ignored
			c.sensors.Cancel()
			return
		}
		s, _ := c.machine.Session()
		if c.overlay != nil {
			c.overlay.Rect = ev.Rect
			c.overlay.Target = s.LastTarget
		}

	case sensor.DragEnd:
		c.overlay = nil
		out, err := c.machine.End(ev.Rect, c.targets, ev.Cancelled, c.view)
		if errors.Is(err, drag.ErrNoSession) {
			return
		}
		log.Debug("drag resolved", "outcome", out.String())
		c.apply(out)
	}
}

// ============================================================================
// Resolution
// ============================================================================

func (c *Controller) apply(out drag.Outcome) {
	switch out.Kind {
	case drag.StageChange:
		c.applyStageChange(out)
	case drag.Reorder:
		c.applyReorder(out)
	}
}

func (c *Controller) applyStageChange(out drag.Outcome) {
	idx := ordering.IndexOf(c.items, func(item models.Item) bool { return item.ID == out.ItemID })
	if idx < 0 {
		return
	}
	c.items = models.MoveToStageEnd(c.items, out.ItemID, out.ToStage)
	c.pending.Record(out.ItemID, out.ToStage)
	c.rebuild()

	c.opts.logger.Info("item moved", "item_id", out.ItemID, "from", out.FromStage, "to", out.ToStage)
	if c.opts.onMove != nil {
		c.opts.onMove(out.ItemID, out.ToStage)
	}
}

func (c *Controller) applyReorder(out drag.Outcome) {
	ids := c.view.ItemIDs(out.FromStage)
	if out.FromIndex >= len(ids) || out.ToIndex >= len(ids) {
		return
	}
	reordered := ordering.Move(ids, out.FromIndex, out.ToIndex)

	// The stage's cards occupy fixed slots in the flat list; refill those
	// slots in the new order so other stages are untouched.
	slots := make([]int, 0, len(ids))
	byID := make(map[string]models.Item, len(ids))
	for i, item := range c.items {
		if item.StageID != out.FromStage {
			continue
		}
		// a duplicate ID is rendered wherever it first appears
		if stage, _ := c.view.StageOf(item.ID); stage != out.FromStage {
			continue
		}
		if _, dup := byID[item.ID]; dup {
			continue
		}
		slots = append(slots, i)
		byID[item.ID] = item
	}
	if len(slots) != len(reordered) {
		c.opts.logger.Debug("reorder skipped, stage changed underneath",
			"stage_id", out.FromStage, "slots", len(slots), "rendered", len(reordered))
		return
	}
	for k, slot := range slots {
		item := byID[reordered[k]]
		item.Position = k
		c.items[slot] = item
	}
	c.rebuild()

	c.opts.logger.Debug("stage reordered", "stage_id", out.FromStage, "order", reordered)
	if c.opts.persistOrder && c.opts.onReorder != nil {
		c.opts.onReorder(out.FromStage, reordered)
	}
}
