package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/board/collision"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
	"github.com/thenoetrevino/pipeboard/internal/tui/layers"
	"github.com/thenoetrevino/pipeboard/internal/tui/notifications"
	"github.com/thenoetrevino/pipeboard/internal/tui/theme"
)

// View renders the current state of the board.
// This implements the "View" part of the Model-View-Update pattern.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = lipgloss.Color(theme.Background)

	// Wait for terminal size to be initialized
	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	stack := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderHeader()).Z(layers.ZBoard),
		lipgloss.NewLayer(m.renderStatusBar()).Y(m.height - statusBarHeight).Z(layers.ZBoard),
	}

	switch {
	case !m.loaded:
		stack = appendLayer(stack, layers.CreateCenteredLayer(components.SubtleStyle.Render("Loading board…"), m.width, m.height))
	case len(m.frame.columns) == 0:
		stack = appendLayer(stack, layers.CreateCenteredLayer(components.SubtleStyle.Render("No stages configured"), m.width, m.height))
	default:
		stack = append(stack, m.boardLayers()...)
	}

	if o, ok := m.board.Overlay(); ok {
		card := components.RenderCard(o.Item, components.CardDragging, o.Rect.W)
		stack = append(stack, layers.ClampedLayer(card, o.Rect.X, o.Rect.Y, layers.ZOverlay, m.width, m.height))
	}

	if m.detail != nil {
		detail := components.RenderDetail(components.DetailProps{
			Item:       *m.detail,
			StageTitle: m.stageTitle(m.detail.StageID),
			Width:      min(max(m.width*2/3, 30), m.width),
		})
		stack = appendLayer(stack, layers.CreateCenteredLayer(detail, m.width, m.height))
	} else if m.showHelp {
		help := components.RenderHelp(m.keys.helpSections())
		stack = appendLayer(stack, layers.CreateCenteredLayer(help, m.width, m.height))
	}

	view.Content = lipgloss.NewCanvas(stack...).Render()
	return view
}

func appendLayer(stack []*lipgloss.Layer, l *lipgloss.Layer) []*lipgloss.Layer {
	if l == nil {
		return stack
	}
	return append(stack, l)
}

// boardLayers draws every visible column and card at its measured rect
func (m *Model) boardLayers() []*lipgloss.Layer {
	highlight, highlighted := m.board.Highlight()
	session, dragging := m.board.Session()

	out := make([]*lipgloss.Layer, 0, len(m.frame.columns)+len(m.frame.cards))
	for _, c := range m.frame.columns {
		col := components.RenderColumn(components.ColumnProps{
			Title:      c.View.Column.Title,
			Count:      len(c.View.Items),
			Width:      c.Rect.W,
			Height:     c.Rect.H,
			MoreAbove:  c.First > 0,
			MoreBelow:  c.First+c.Shown < len(c.View.Items),
			DropTarget: highlighted && highlight.Kind == collision.KindColumn && highlight.ID == c.View.Column.ID,
		})
		out = append(out, lipgloss.NewLayer(col).X(c.Rect.X).Y(c.Rect.Y).Z(layers.ZBoard))
	}

	for _, c := range m.frame.cards {
		state := components.CardNormal
		switch {
		case dragging && c.Item.ID == session.ActiveItemID:
			state = components.CardPlaceholder
		case highlighted && highlight.Kind == collision.KindItem && highlight.ID == c.Item.ID:
			state = components.CardDropTarget
		case !dragging && c.Item.ID == m.focusID:
			state = components.CardFocused
		}
		card := components.RenderCard(c.Item, state, c.Rect.W)
		out = append(out, lipgloss.NewLayer(card).X(c.Rect.X).Y(c.Rect.Y).Z(layers.ZCard).ID(c.Item.ID))
	}
	return out
}

// renderHeader renders the title row with the latest notification on the
// right
func (m *Model) renderHeader() string {
	title := components.TitleStyle.Render("pipeboard")
	n, ok := m.notifications.Latest()
	if !ok {
		return title
	}
	room := m.width - lipgloss.Width(title) - 1
	if room < 4 {
		return title
	}
	inline := notifications.RenderInline(n, room)
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(inline), 1)
	return title + fmt.Sprintf("%*s", gap, "") + inline
}

func (m *Model) renderStatusBar() string {
	return components.RenderStatusBar(components.StatusBarProps{
		Width:    m.width,
		Left:     m.statusText(),
		Live:     m.live,
		HelpHint: "? help",
	})
}

// statusText describes the drag in progress, or the board when idle
func (m *Model) statusText() string {
	session, ok := m.board.Session()
	if !ok {
		return fmt.Sprintf("%d stages · %d cards", len(m.board.ColumnList()), len(m.board.Items()))
	}

	title := session.ActiveItemID
	if item, found := m.board.Partition().Item(session.ActiveItemID); found {
		title = item.Title
	}
	target, ok := m.board.Highlight()
	if !ok {
		return fmt.Sprintf("moving %q", title)
	}

	stage := target.ID
	if target.Kind == collision.KindItem {
		stage, _ = m.board.Partition().StageOf(target.ID)
	}
	return fmt.Sprintf("moving %q → %s", title, m.stageTitle(stage))
}
