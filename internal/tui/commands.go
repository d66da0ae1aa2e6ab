package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
)

const notificationTTL = 4 * time.Second

// loadSnapshot fetches stages and items from the store
func loadSnapshot(ctx context.Context, svc pipeline.Service) tea.Cmd {
	return func() tea.Msg {
		stages, err := svc.Stages(ctx)
		if err != nil {
			return SnapshotMsg{Err: err}
		}
		items, err := svc.Snapshot(ctx)
		if err != nil {
			return SnapshotMsg{Err: err}
		}
		return SnapshotMsg{Stages: stages, Items: items}
	}
}

// persistMove stores a stage change made on the board
func persistMove(ctx context.Context, svc pipeline.Service, itemID, stageID string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.MoveItem(ctx, itemID, stageID)
		return MoveResultMsg{ItemID: itemID, StageID: stageID, Err: err}
	}
}

// persistReorder stores the new order of one stage
func persistReorder(ctx context.Context, svc pipeline.Service, stageID string, orderedIDs []string) tea.Cmd {
	return func() tea.Msg {
		err := svc.ReorderStage(ctx, stageID, orderedIDs)
		return ReorderResultMsg{StageID: stageID, Err: err}
	}
}

// waitForEvent blocks until the daemon delivers the next event
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return LiveUpdatesLostMsg{}
		}
		return BoardChangedMsg{Source: ev.Source}
	}
}

// waitForChange blocks until the file watcher signals a change
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

// tick schedules the next periodic refresh
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func dismissAfter(id int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return dismissNotificationMsg{id: id}
	})
}
