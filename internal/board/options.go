package board

import (
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/board/reconcile"
	"github.com/thenoetrevino/pipeboard/internal/board/sensor"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// MoveFunc is invoked exactly once per cross-stage move. It runs inside the
// event handler and must not block; hand persistence off to another goroutine.
type MoveFunc func(itemID, stageID string)

// ActivateFunc is invoked when an item is clicked (released below the
// activation distance)
type ActivateFunc func(item models.Item)

// ReorderFunc is invoked after an intra-stage reorder when order persistence
// is enabled. orderedIDs is the stage's full new order.
type ReorderFunc func(stageID string, orderedIDs []string)

// Option is a functional option for configuring a Controller
type Option func(*options)

// options holds the configuration for Controller initialization
type options struct {
	onMove             MoveFunc
	onActivate         ActivateFunc
	onReorder          ReorderFunc
	persistOrder       bool
	activationDistance int
	detectionRange     int
	coordinates        sensor.CoordinateGetter
	policy             reconcile.Policy
	logger             *slog.Logger
}

func defaultOptions() options {
	return options{
		activationDistance: sensor.DefaultActivationDistance,
		policy:             reconcile.LastSnapshotWins{},
		logger:             slog.Default(),
	}
}

// WithOnMove sets the cross-stage move callback
func WithOnMove(fn MoveFunc) Option {
	return func(o *options) {
		o.onMove = fn
	}
}

// WithOnActivate sets the click callback
func WithOnActivate(fn ActivateFunc) Option {
	return func(o *options) {
		o.onActivate = fn
	}
}

// WithOnReorder sets the reorder callback. It is only called when
// WithPersistOrder(true) is also given.
func WithOnReorder(fn ReorderFunc) Option {
	return func(o *options) {
		o.onReorder = fn
	}
}

// WithPersistOrder controls whether intra-stage reorders are reported
// outward. By default they are presentation-only.
func WithPersistOrder(persist bool) Option {
	return func(o *options) {
		o.persistOrder = persist
	}
}

// WithActivationDistance sets the pointer activation distance
func WithActivationDistance(distance int) Option {
	return func(o *options) {
		o.activationDistance = distance
	}
}

// WithDetectionRange sets the collision detection range (0 = unlimited)
func WithDetectionRange(distance int) Option {
	return func(o *options) {
		o.detectionRange = distance
	}
}

// WithCoordinateGetter overrides the keyboard coordinate mapping
func WithCoordinateGetter(getter sensor.CoordinateGetter) Option {
	return func(o *options) {
		o.coordinates = getter
	}
}

// WithPolicy sets the snapshot reconciliation policy
func WithPolicy(policy reconcile.Policy) Option {
	return func(o *options) {
		if policy != nil {
			o.policy = policy
		}
	}
}

// WithLogger sets the logger for the controller
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
