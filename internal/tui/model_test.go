package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
)

// ============================================================================
// Test Helpers
// ============================================================================

const (
	testWidth  = 120
	testHeight = 30
)

// countingService counts snapshot loads and can fail moves
type countingService struct {
	pipeline.Service
	snapshots atomic.Int32
	moveErr   error
}

func (s *countingService) Snapshot(ctx context.Context) ([]models.Item, error) {
	s.snapshots.Add(1)
	return s.Service.Snapshot(ctx)
}

func (s *countingService) MoveItem(ctx context.Context, id, stageID string) (*models.Item, error) {
	if s.moveErr != nil {
		return nil, s.moveErr
	}
	return s.Service.MoveItem(ctx, id, stageID)
}

// setupBoard creates a store with one item in "lead" and an empty "won"
func setupBoard(t *testing.T) (*countingService, *models.Item) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	item := testutil.CreateTestItem(t, repo, "lead", "Acme renewal")
	return &countingService{Service: pipeline.NewService(repo, nil)}, item
}

func newTestModel(t *testing.T, svc pipeline.Service, opts ...Option) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Board.RefreshInterval = 0

	m := New(context.Background(), svc, cfg, opts...)
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	drain(t, m, m.Init())
	require.True(t, m.loaded, "initial snapshot should be applied")
	return m
}

// runCmd executes a command, giving up on commands that wait for timers or
// live update channels
func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

// drain runs cmd and feeds every resulting message back into the model
// until no immediate commands remain
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func send(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	drain(t, m, cmd)
}

func press(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: []rune(text)[0], Text: text})
}

func stageOf(t *testing.T, svc pipeline.Service, id string) string {
	t.Helper()
	item, err := svc.GetItem(context.Background(), id)
	require.NoError(t, err)
	return item.StageID
}

// ============================================================================
// Loading and rendering
// ============================================================================

func TestInit_LoadsBoard(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	require.Len(t, m.board.Columns(), 3)
	assert.Equal(t, item.ID, m.focusID, "first card of the first column takes focus")

	content := m.View().Content
	assert.Contains(t, content, "Lead (1)")
	assert.Contains(t, content, "Won (0)")
	assert.Contains(t, content, "Acme renewal")
}

func TestView_BeforeSize(t *testing.T) {
	svc, _ := setupBoard(t)
	m := New(context.Background(), svc, config.Default())

	v := m.View()
	assert.Equal(t, "Loading...", v.Content)
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeCellMotion, v.MouseMode)
}

func TestView_NoStages(t *testing.T) {
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := newTestModel(t, pipeline.NewService(database.NewRepository(db), nil))
	assert.Contains(t, m.View().Content, "No stages configured")
}

// ============================================================================
// Keyboard drag
// ============================================================================

func TestKeyboardDrag_MovesAcrossStages(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
	require.True(t, m.board.Dragging())
	assert.Contains(t, m.View().Content, "moving")

	// while carrying, "l" steers the card instead of moving focus
	send(t, m, press("l"))
	target, ok := m.board.Highlight()
	require.True(t, ok)
	assert.Equal(t, "won", target.ID)

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
	assert.False(t, m.board.Dragging())

	assert.Equal(t, "won", stageOf(t, svc, item.ID))
	stage, _ := m.board.Partition().StageOf(item.ID)
	assert.Equal(t, "won", stage)
	assert.Equal(t, 1, m.focusCol, "focus follows the moved card")
}

func TestKeyboardDrag_CancelRestores(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
	send(t, m, press("L"))
	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))

	assert.False(t, m.board.Dragging())
	assert.Equal(t, "lead", stageOf(t, svc, item.ID))
}

func TestKeyboard_NavigationAndHelp(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	send(t, m, press("l"))
	assert.Equal(t, 1, m.focusCol)
	assert.Empty(t, m.focusID, "empty column has no focused card")

	// pickup without a focused card does nothing
	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
	assert.False(t, m.board.Dragging())

	send(t, m, press("h"))
	assert.Equal(t, item.ID, m.focusID)

	send(t, m, press("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View().Content, "keyboard shortcuts")
	send(t, m, press("x"))
	assert.False(t, m.showHelp, "any key closes help")
}

func TestKeyboard_ViewItemOpensDetail(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
	require.NotNil(t, m.detail)
	assert.Equal(t, item.ID, m.detail.ID)
	assert.Contains(t, m.View().Content, "Stage: Lead")

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
	assert.Nil(t, m.detail)
}

// ============================================================================
// Pointer drag
// ============================================================================

func TestMouseDrag_MovesAcrossStages(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	card, ok := m.frame.card(item.ID)
	require.True(t, ok)
	won := m.frame.columns[1].Rect
	start := tea.Mouse{X: card.Rect.X + 1, Y: card.Rect.Y + 1, Button: tea.MouseLeft}
	end := tea.Mouse{X: start.X + won.X, Y: start.Y, Button: tea.MouseLeft}

	send(t, m, tea.MouseClickMsg(start))
	assert.False(t, m.board.Dragging(), "no drag before the activation distance")

	send(t, m, tea.MouseMotionMsg(end))
	require.True(t, m.board.Dragging())
	o, ok := m.board.Overlay()
	require.True(t, ok)
	assert.Equal(t, card.Rect.X+won.X, o.Rect.X, "overlay follows the pointer")

	send(t, m, tea.MouseReleaseMsg(end))
	assert.False(t, m.board.Dragging())
	assert.Equal(t, "won", stageOf(t, svc, item.ID))
}

func TestMouseClick_ActivatesItem(t *testing.T) {
	svc, item := setupBoard(t)
	m := newTestModel(t, svc)

	card, ok := m.frame.card(item.ID)
	require.True(t, ok)
	at := tea.Mouse{X: card.Rect.X + 2, Y: card.Rect.Y + 1, Button: tea.MouseLeft}

	send(t, m, tea.MouseClickMsg(at))
	send(t, m, tea.MouseReleaseMsg(at))

	require.NotNil(t, m.detail)
	assert.Equal(t, item.ID, m.detail.ID)
	assert.Equal(t, "lead", stageOf(t, svc, item.ID))

	// clicking anywhere closes the detail
	send(t, m, tea.MouseClickMsg(at))
	assert.Nil(t, m.detail)
}

func TestMouseClick_FocusesColumn(t *testing.T) {
	svc, _ := setupBoard(t)
	m := newTestModel(t, svc)

	lost := m.frame.columns[2].Rect
	send(t, m, tea.MouseClickMsg(tea.Mouse{X: lost.X + 3, Y: lost.Y + 2, Button: tea.MouseLeft}))
	assert.Equal(t, 2, m.focusCol)
}

// ============================================================================
// Persistence failures and live updates
// ============================================================================

func TestMoveFailure_RevertsOnReload(t *testing.T) {
	svc, item := setupBoard(t)
	svc.moveErr = errors.New("store offline")
	m := newTestModel(t, svc)

	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
	send(t, m, press("l"))
	send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))

	stage, _ := m.board.Partition().StageOf(item.ID)
	assert.Equal(t, "lead", stage, "rejected move is undone by the reload")
	assert.Empty(t, m.board.Pending())

	n, ok := m.notifications.Latest()
	require.True(t, ok)
	assert.Contains(t, n.Message, "store offline")
}

func TestBoardChanged_SkipsOwnEvents(t *testing.T) {
	svc, _ := setupBoard(t)
	ch := make(chan events.Event)
	t.Cleanup(func() { close(ch) })
	m := newTestModel(t, svc, WithEvents(ch, "self"))
	before := svc.snapshots.Load()

	send(t, m, BoardChangedMsg{Source: "self"})
	assert.Equal(t, before, svc.snapshots.Load())

	send(t, m, BoardChangedMsg{Source: "other"})
	assert.Equal(t, before+1, svc.snapshots.Load())
}

func TestBoardChanged_PicksUpExternalWrites(t *testing.T) {
	svc, _ := setupBoard(t)
	m := newTestModel(t, svc)

	_, err := svc.CreateItem(context.Background(), pipeline.CreateItemRequest{StageID: "lost", Title: "Globex"})
	require.NoError(t, err)

	send(t, m, StoreChangedMsg{})
	assert.Len(t, m.board.Items(), 2)
	assert.Contains(t, m.View().Content, "Globex")
}

func TestLiveUpdatesLost(t *testing.T) {
	svc, _ := setupBoard(t)
	ch := make(chan events.Event)
	m := newTestModel(t, svc, WithEvents(ch, "self"))
	assert.Equal(t, "live", m.live)

	close(ch)
	send(t, m, waitForEvent(ch)())
	assert.Equal(t, "offline", m.live)
	assert.True(t, strings.Contains(m.View().Content, "offline"))
}

func TestCtrlC_Quits(t *testing.T) {
	svc, _ := setupBoard(t)
	m := newTestModel(t, svc)

	_, cmd := m.Update(tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl}))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
