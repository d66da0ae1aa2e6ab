package tui

import (
	"github.com/thenoetrevino/pipeboard/internal/board/collision"
	"github.com/thenoetrevino/pipeboard/internal/board/columns"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
)

// Screen rows used outside the board
const (
	headerHeight    = 1
	statusBarHeight = 1
)

// Column width bounds in cells
const (
	minColumnWidth = 22
	maxColumnWidth = 40
	minBoardHeight = 8
)

// placedColumn is a column with its screen geometry
type placedColumn struct {
	View  columns.View
	Index int // index among all columns
	Rect  collision.Rect
	First int // index of the first visible card
	Shown int // number of visible cards
}

// placedCard is a visible card with its screen geometry
type placedCard struct {
	Item   models.Item
	Column int // index among all columns
	Index  int // index within its stage
	Rect   collision.Rect
}

// frame is the measured geometry of the board for one render. Both the view
// and hit testing read it, so what is drawn is what can be dropped on.
type frame struct {
	columns     []placedColumn
	cards       []placedCard
	columnWidth int
	cardWidth   int
	visibleCols int
}

// layoutBoard positions columns and cards on a width x height screen.
// colOffset is the first visible column; scroll maps stage IDs to the first
// visible card of that stage.
func layoutBoard(views []columns.View, width, height, colOffset int, scroll map[string]int) frame {
	var f frame
	if len(views) == 0 || width <= 0 {
		return f
	}

	colH := max(height-headerHeight-statusBarHeight, minBoardHeight)
	colW := min(max(width/len(views), minColumnWidth), maxColumnWidth, width)

	f.columnWidth = colW
	f.cardWidth = colW - components.ColumnStyle.GetHorizontalFrameSize()
	f.visibleCols = max(width/colW, 1)

	cardX := components.ColumnStyle.GetBorderLeftSize() + components.ColumnStyle.GetPaddingLeft()
	cardY := components.ColumnStyle.GetBorderTopSize() + components.ColumnHeaderLines
	perColumn := components.VisibleCards(colH)

	end := min(colOffset+f.visibleCols, len(views))
	for i := colOffset; i < end; i++ {
		v := views[i]
		rect := collision.Rect{X: (i - colOffset) * colW, Y: headerHeight, W: colW, H: colH}

		first := clampScroll(scroll[v.Column.ID], len(v.Items), perColumn)
		shown := min(perColumn, len(v.Items)-first)

		f.columns = append(f.columns, placedColumn{View: v, Index: i, Rect: rect, First: first, Shown: shown})

		for k := 0; k < shown; k++ {
			f.cards = append(f.cards, placedCard{
				Item:   v.Items[first+k],
				Column: i,
				Index:  first + k,
				Rect: collision.Rect{
					X: rect.X + cardX,
					Y: rect.Y + cardY + k*components.CardHeight,
					W: f.cardWidth,
					H: components.CardHeight,
				},
			})
		}
	}
	return f
}

// clampScroll keeps a scroll offset inside [0, n-visible]
func clampScroll(offset, n, visible int) int {
	return max(min(offset, n-visible), 0)
}

// targets returns the drop surfaces: columns left to right, then cards top
// to bottom within each column
func (f frame) targets() []collision.Target {
	out := make([]collision.Target, 0, len(f.columns)+len(f.cards))
	for _, c := range f.columns {
		out = append(out, collision.ColumnTarget(c.View.Column.ID, c.Rect))
	}
	for _, c := range f.cards {
		out = append(out, collision.ItemTarget(c.Item.ID, c.Rect))
	}
	return out
}

// cardAt returns the visible card under p
func (f frame) cardAt(p collision.Point) (placedCard, bool) {
	for _, c := range f.cards {
		if c.Rect.Contains(p) {
			return c, true
		}
	}
	return placedCard{}, false
}

// columnAt returns the visible column under p
func (f frame) columnAt(p collision.Point) (placedColumn, bool) {
	for _, c := range f.columns {
		if c.Rect.Contains(p) {
			return c, true
		}
	}
	return placedColumn{}, false
}

// card returns the placed card for an item ID
func (f frame) card(itemID string) (placedCard, bool) {
	for _, c := range f.cards {
		if c.Item.ID == itemID {
			return c, true
		}
	}
	return placedCard{}, false
}
