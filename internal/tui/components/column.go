package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ColumnProps describes one column frame. Cards are drawn separately on
// top of it so their positions can be measured.
type ColumnProps struct {
	Title      string
	Count      int
	Width      int
	Height     int
	MoreAbove  bool
	MoreBelow  bool
	DropTarget bool
}

// ColumnHeaderLines is the number of rows between the top border and the
// first card: the title and the "more above" indicator.
const ColumnHeaderLines = 2

// RenderColumn renders an empty column box with its title and scroll
// indicators
//
//	╭──────────────────╮
//	│ {Title} ({n})    │
//	│ ▲ more above     │
//	│   ... cards ...  │
//	│ ▼ more below     │
//	╰──────────────────╯
func RenderColumn(p ColumnProps) string {
	style := ColumnStyle
	if p.DropTarget {
		style = DropColumnStyle
	}
	inner := max(p.Width-style.GetHorizontalFrameSize(), 1)
	innerHeight := max(p.Height-style.GetVerticalFrameSize(), ColumnHeaderLines)

	lines := make([]string, innerHeight)
	lines[0] = ColumnTitleStyle.Render(ansi.Truncate(fmt.Sprintf("%s (%d)", p.Title, p.Count), inner, "…"))
	if p.MoreAbove {
		lines[1] = IndicatorStyle.Render("▲ more above")
	}
	if p.MoreBelow && innerHeight > ColumnHeaderLines {
		lines[innerHeight-1] = IndicatorStyle.Render("▼ more below")
	}
	if p.Count == 0 && innerHeight > ColumnHeaderLines {
		lines[ColumnHeaderLines] = IndicatorStyle.Render("empty")
	}

	return Box(style, strings.Join(lines, "\n"), p.Width, p.Height)
}

// VisibleCards is how many cards fit in a column of the given total height
func VisibleCards(height int) int {
	// border top/bottom, header lines and one row for the bottom indicator
	usable := height - ColumnStyle.GetVerticalFrameSize() - ColumnHeaderLines - 1
	return max(usable/CardHeight, 1)
}
