package tui

import "github.com/thenoetrevino/pipeboard/internal/tui/components"

// syncFocus re-anchors keyboard focus after the item list changed. Focus
// follows the item across stages; if it vanished the column keeps focus.
func (m *Model) syncFocus() {
	views := m.board.Columns()
	if len(views) == 0 {
		m.focusCol, m.focusID = 0, ""
		return
	}

	partition := m.board.Partition()
	if stage, ok := partition.StageOf(m.focusID); ok {
		if idx, ok := partition.ColumnIndex(stage); ok {
			m.focusCol = idx
			return
		}
	}

	m.focusCol = min(max(m.focusCol, 0), len(views)-1)
	m.focusID = ""
	if items := views[m.focusCol].Items; len(items) > 0 {
		m.focusID = items[0].ID
	}
}

// moveFocusColumn moves focus to a neighbouring column, keeping the card
// index where possible
func (m *Model) moveFocusColumn(delta int) {
	views := m.board.Columns()
	if len(views) == 0 {
		return
	}
	index, _ := m.board.Partition().IndexOf(m.focusID)

	m.focusCol = min(max(m.focusCol+delta, 0), len(views)-1)
	m.focusID = ""
	if items := views[m.focusCol].Items; len(items) > 0 {
		m.focusID = items[min(index, len(items)-1)].ID
	}
}

// moveFocusItem moves focus up or down within the focused column
func (m *Model) moveFocusItem(delta int) {
	views := m.board.Columns()
	if m.focusCol >= len(views) {
		return
	}
	items := views[m.focusCol].Items
	if len(items) == 0 {
		return
	}
	index, ok := m.board.Partition().IndexOf(m.focusID)
	if !ok {
		index = 0
	} else {
		index = min(max(index+delta, 0), len(items)-1)
	}
	m.focusID = items[index].ID
}

// ensureVisible scrolls columns and cards so the focus is on screen
func (m *Model) ensureVisible() {
	views := m.board.Columns()
	if len(views) == 0 || m.width == 0 {
		return
	}

	probe := layoutBoard(views, m.width, m.height, 0, nil)
	visibleCols := probe.visibleCols
	if m.focusCol < m.colOffset {
		m.colOffset = m.focusCol
	}
	if m.focusCol >= m.colOffset+visibleCols {
		m.colOffset = m.focusCol - visibleCols + 1
	}
	m.colOffset = min(max(m.colOffset, 0), max(len(views)-visibleCols, 0))

	index, ok := m.board.Partition().IndexOf(m.focusID)
	if !ok {
		return
	}
	stage := views[m.focusCol].Column.ID
	perColumn := components.VisibleCards(max(m.height-headerHeight-statusBarHeight, minBoardHeight))
	first := m.scroll[stage]
	if index < first {
		first = index
	}
	if index >= first+perColumn {
		first = index - perColumn + 1
	}
	m.scroll[stage] = clampScroll(first, len(views[m.focusCol].Items), perColumn)
}

// relayout recomputes the frame and registers it with the board. It runs
// at the end of every Update so hit testing always matches the last render.
func (m *Model) relayout() {
	m.syncFocus()
	m.ensureVisible()
	m.frame = layoutBoard(m.board.Columns(), m.width, m.height, m.colOffset, m.scroll)
	m.board.SetTargets(m.frame.targets())
}
