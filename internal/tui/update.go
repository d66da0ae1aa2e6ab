package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/board/collision"
	"github.com/thenoetrevino/pipeboard/internal/board/sensor"
	"github.com/thenoetrevino/pipeboard/internal/tui/notifications"
)

// Update handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Context cancelled means graceful shutdown
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case SnapshotMsg:
		cmds = append(cmds, m.handleSnapshot(msg))

	case MoveResultMsg:
		cmds = append(cmds, m.handleMoveResult(msg))

	case ReorderResultMsg:
		if msg.Err != nil {
			m.log.Error("failed to persist order", "stage_id", msg.StageID, "error", msg.Err)
			cmds = append(cmds,
				m.notify(notifications.Error, fmt.Sprintf("Could not save order: %v", msg.Err)),
				loadSnapshot(m.ctx, m.svc))
		}

	case BoardChangedMsg:
		// our own writes are already on screen
		if msg.Source != m.selfID {
			cmds = append(cmds, loadSnapshot(m.ctx, m.svc))
		}
		if m.eventChan != nil {
			cmds = append(cmds, waitForEvent(m.eventChan))
		}

	case StoreChangedMsg:
		cmds = append(cmds, loadSnapshot(m.ctx, m.svc))
		if m.watchChan != nil {
			cmds = append(cmds, waitForChange(m.watchChan))
		}

	case LiveUpdatesLostMsg:
		m.eventChan = nil
		m.live = "offline"
		if m.watchChan != nil {
			m.live = "watching"
		}
		cmds = append(cmds, m.notify(notifications.Error, "Lost connection to the daemon"))

	case tickMsg:
		cmds = append(cmds, loadSnapshot(m.ctx, m.svc), tick(m.config.Board.RefreshInterval))

	case dismissNotificationMsg:
		m.notifications.Dismiss(msg.id)

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseClickMsg:
		m.handleMouseDown(msg.Mouse())

	case tea.MouseMotionMsg:
		if m.pointerDown {
			mouse := msg.Mouse()
			m.board.PointerMove(collision.Point{X: mouse.X, Y: mouse.Y})
		}

	case tea.MouseReleaseMsg:
		if m.pointerDown {
			m.pointerDown = false
			mouse := msg.Mouse()
			m.board.PointerUp(collision.Point{X: mouse.X, Y: mouse.Y})
		}
	}

	cmds = append(cmds, m.takeQueued()...)
	m.relayout()

	return m, tea.Batch(cmds...)
}

func (m *Model) handleSnapshot(msg SnapshotMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Error("failed to load board", "error", msg.Err)
		return m.notify(notifications.Error, fmt.Sprintf("Could not load board: %v", msg.Err))
	}
	m.board.SetColumns(msg.Stages)
	m.board.ApplySnapshot(msg.Items)
	m.loaded = true
	return nil
}

func (m *Model) handleMoveResult(msg MoveResultMsg) tea.Cmd {
	if msg.Err != nil {
		m.log.Error("failed to persist move", "item_id", msg.ItemID, "stage_id", msg.StageID, "error", msg.Err)
		m.board.RejectMove(msg.ItemID)
		return tea.Batch(
			m.notify(notifications.Error, fmt.Sprintf("Could not move card: %v", msg.Err)),
			loadSnapshot(m.ctx, m.svc),
		)
	}
	return m.notify(notifications.Info, "Moved to "+m.stageTitle(msg.StageID))
}

// handleKey dispatches key presses: overlays first, then drag intents, then
// navigation
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.detail != nil {
		if key.Matches(msg, m.keys.CancelDrag, m.keys.ViewItem, m.keys.Quit) {
			m.detail = nil
		}
		return nil
	}
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	carrying := m.board.Dragging() && !m.pointerDown
	if intent := m.keys.dragIntent(msg, carrying); intent != sensor.IntentNone {
		if intent == sensor.IntentToggle && !carrying && m.focusID == "" {
			return nil
		}
		m.board.Key(intent, m.focusID)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.moveFocusColumn(-1)
	case key.Matches(msg, m.keys.NextColumn):
		m.moveFocusColumn(1)
	case key.Matches(msg, m.keys.PrevItem):
		m.moveFocusItem(-1)
	case key.Matches(msg, m.keys.NextItem):
		m.moveFocusItem(1)
	case key.Matches(msg, m.keys.ViewItem):
		if item, ok := m.board.Partition().Item(m.focusID); ok {
			m.onActivate(item)
		}
	case key.Matches(msg, m.keys.Refresh):
		return loadSnapshot(m.ctx, m.svc)
	case key.Matches(msg, m.keys.ShowHelp):
		m.showHelp = true
	}
	return nil
}

// handleMouseDown starts a pointer gesture on a card, or moves focus to the
// clicked column
func (m *Model) handleMouseDown(mouse tea.Mouse) {
	if m.detail != nil || m.showHelp {
		m.detail = nil
		m.showHelp = false
		return
	}
	if mouse.Button != tea.MouseLeft {
		return
	}

	at := collision.Point{X: mouse.X, Y: mouse.Y}
	if card, ok := m.frame.cardAt(at); ok {
		m.focusID = card.Item.ID
		m.focusCol = card.Column
		m.pointerDown = true
		m.board.PointerDown(card.Item.ID, at, card.Rect)
		return
	}
	if col, ok := m.frame.columnAt(at); ok && col.Index != m.focusCol {
		m.focusCol = col.Index
		m.focusID = ""
		if len(col.View.Items) > 0 {
			m.focusID = col.View.Items[0].ID
		}
	}
}
