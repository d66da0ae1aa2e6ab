package components

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

func init() {
	InitStyles(*colors.Default())
}

func TestRenderCard_FixedSize(t *testing.T) {
	item := models.Item{Title: "A fairly long company name that overflows", Fields: map[string]string{"value": "1200", "owner": "kim"}}

	for _, state := range []CardState{CardNormal, CardFocused, CardDropTarget, CardPlaceholder, CardDragging} {
		out := RenderCard(item, state, 24)
		assert.Equal(t, 24, lipgloss.Width(out), "state %d width", state)
		assert.Equal(t, CardHeight, lipgloss.Height(out), "state %d height", state)
	}
}

func TestFieldSummary(t *testing.T) {
	assert.Equal(t, "", FieldSummary(nil))
	assert.Equal(t, "a=1 b=2", FieldSummary(map[string]string{"b": "2", "a": "1"}))
}

func TestRenderColumn_Size(t *testing.T) {
	out := RenderColumn(ColumnProps{Title: "Lead", Count: 3, Width: 30, Height: 20, MoreBelow: true})
	assert.Equal(t, 30, lipgloss.Width(out))
	assert.Equal(t, 20, lipgloss.Height(out))
	assert.Contains(t, out, "Lead (3)")
	assert.Contains(t, out, "more below")

	highlighted := RenderColumn(ColumnProps{Title: "Lead", Width: 30, Height: 20, DropTarget: true})
	assert.Equal(t, 30, lipgloss.Width(highlighted))
	assert.Contains(t, highlighted, "empty")
}

func TestVisibleCards(t *testing.T) {
	assert.Equal(t, 1, VisibleCards(3), "at least one card is always visible")
	assert.Greater(t, VisibleCards(40), VisibleCards(20))
}

func TestRenderNotes(t *testing.T) {
	assert.Contains(t, RenderNotes("", 40), "No notes")
	assert.Contains(t, RenderNotes("# Kickoff\n\ncall on monday", 40), "Kickoff")
}

func TestRenderDetail(t *testing.T) {
	out := RenderDetail(DetailProps{
		Item:       models.Item{Title: "Acme", Notes: "hello", Fields: map[string]string{"value": "10"}},
		StageTitle: "Lead",
		Width:      50,
	})
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Stage: Lead")
	assert.Contains(t, out, "value=10")
}

func TestRenderHelp_SkipsDisabled(t *testing.T) {
	enabled := key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "pick up / drop"))
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled())

	out := RenderHelp([]HelpSection{{Title: "drag", Bindings: []key.Binding{enabled, disabled}}})
	assert.Contains(t, out, "pick up / drop")
	assert.NotContains(t, out, "hidden")
}

func TestRenderStatusBar_Width(t *testing.T) {
	out := RenderStatusBar(StatusBarProps{Width: 60, Left: "dragging", Live: "live", HelpHint: "? help"})
	assert.Equal(t, 60, lipgloss.Width(out))
}
