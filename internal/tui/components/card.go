package components

import (
	"maps"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// CardState selects how a card is drawn
type CardState int

const (
	CardNormal      CardState = iota
	CardFocused               // Keyboard focus
	CardDropTarget            // Under the dragged card
	CardPlaceholder           // Origin slot of the dragged card
	CardDragging              // Floating overlay
)

// CardHeight is the fixed height of a card: border, title and field lines
const CardHeight = 4

// RenderCard renders a single item as a card
//
//	┌────────────────────┐
//	│ {Title}            │
//	│ key=value key=val… │
//	└────────────────────┘
//
// width is the total width including the border.
func RenderCard(item models.Item, state CardState, width int) string {
	style := cardStyle(state)
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	title := lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(item.Title, inner, "…"))
	meta := SubtleStyle.Render(ansi.Truncate(FieldSummary(item.Fields), inner, "…"))

	return Box(style, title+"\n"+meta, width, CardHeight)
}

// FieldSummary renders an item's fields as sorted key=value pairs
func FieldSummary(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, k+"="+fields[k])
	}
	return strings.Join(parts, " ")
}

func cardStyle(state CardState) lipgloss.Style {
	switch state {
	case CardFocused:
		return FocusedCardStyle
	case CardDropTarget:
		return DropCardStyle
	case CardPlaceholder:
		return PlaceholderCardStyle
	case CardDragging:
		return DragCardStyle
	default:
		return CardStyle
	}
}
