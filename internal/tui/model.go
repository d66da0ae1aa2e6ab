package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/board"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
	"github.com/thenoetrevino/pipeboard/internal/tui/notifications"
)

// Model is the Bubble Tea model of the board. It owns the board controller
// and is its only driver; all engine calls happen inside Update.
type Model struct {
	ctx    context.Context
	svc    pipeline.Service
	config *config.Config
	log    *slog.Logger
	keys   keyMap

	board *board.Controller

	width  int
	height int

	// keyboard focus, tracked by item ID so it survives snapshots
	focusCol int
	focusID  string

	colOffset int            // first visible column
	scroll    map[string]int // per-stage index of the first visible card

	frame frame

	pointerDown bool

	detail        *models.Item
	showHelp      bool
	notifications *notifications.State
	loaded        bool

	// live update sources
	eventChan <-chan events.Event
	selfID    string
	watchChan <-chan struct{}
	live      string

	// commands queued by board callbacks during the current Update
	queued []tea.Cmd
}

// Option configures a Model
type Option func(*Model)

// WithEvents subscribes the board to daemon events. Events whose Source is
// selfID were sent by this process and are skipped.
func WithEvents(ch <-chan events.Event, selfID string) Option {
	return func(m *Model) {
		m.eventChan = ch
		m.selfID = selfID
		if ch != nil {
			m.live = "live"
		}
	}
}

// WithWatcher refreshes the board whenever the store file changes
func WithWatcher(ch <-chan struct{}) Option {
	return func(m *Model) {
		m.watchChan = ch
		if ch != nil && m.live == "" {
			m.live = "watching"
		}
	}
}

// WithLogger sets the logger used by the model and the board controller
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates the board model. Stages and items are loaded by Init.
func New(ctx context.Context, svc pipeline.Service, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		ctx:           ctx,
		svc:           svc,
		config:        cfg,
		log:           slog.Default(),
		keys:          newKeyMap(cfg.KeyMappings),
		scroll:        make(map[string]int),
		notifications: notifications.NewState(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.live == "" && cfg.Board.RefreshInterval > 0 {
		m.live = fmt.Sprintf("polling %s", cfg.Board.RefreshInterval)
	}

	components.InitStyles(cfg.ColorScheme)

	boardOpts := []board.Option{
		board.WithOnMove(m.onMove),
		board.WithOnActivate(m.onActivate),
		board.WithOnReorder(m.onReorder),
		board.WithPersistOrder(cfg.Board.PersistOrder),
		board.WithActivationDistance(cfg.Board.ActivationDistance),
		board.WithDetectionRange(cfg.Board.DetectionRange),
		board.WithLogger(m.log),
	}
	if policy, err := cfg.Board.Policy(); err == nil {
		boardOpts = append(boardOpts, board.WithPolicy(policy))
	} else {
		m.log.Warn("ignoring sync policy", "error", err)
	}
	m.board = board.New(nil, nil, boardOpts...)

	return m
}

// Init loads the first snapshot and starts the live update sources
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSnapshot(m.ctx, m.svc)}
	if m.eventChan != nil {
		cmds = append(cmds, waitForEvent(m.eventChan))
	}
	if m.watchChan != nil {
		cmds = append(cmds, waitForChange(m.watchChan))
	}
	if m.config.Board.RefreshInterval > 0 {
		cmds = append(cmds, tick(m.config.Board.RefreshInterval))
	}
	return tea.Batch(cmds...)
}

// Board exposes the controller, mainly for tests
func (m *Model) Board() *board.Controller {
	return m.board
}

// ============================================================================
// Board callbacks
// ============================================================================

// Callbacks run synchronously inside controller calls made from Update, so
// they only queue commands.

func (m *Model) onMove(itemID, stageID string) {
	m.queued = append(m.queued, persistMove(m.ctx, m.svc, itemID, stageID))
}

func (m *Model) onReorder(stageID string, orderedIDs []string) {
	m.queued = append(m.queued, persistReorder(m.ctx, m.svc, stageID, orderedIDs))
}

func (m *Model) onActivate(item models.Item) {
	m.focusID = item.ID
	m.detail = &item
}

// takeQueued returns and clears the commands queued by callbacks
func (m *Model) takeQueued() []tea.Cmd {
	cmds := m.queued
	m.queued = nil
	return cmds
}

func (m *Model) notify(severity notifications.Severity, msg string) tea.Cmd {
	id := m.notifications.Add(severity, msg)
	return dismissAfter(id)
}

// stageTitle returns the display title of a stage
func (m *Model) stageTitle(stageID string) string {
	for _, c := range m.board.ColumnList() {
		if c.ID == stageID {
			return c.Title
		}
	}
	return stageID
}
