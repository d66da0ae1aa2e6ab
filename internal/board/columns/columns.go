// Package columns partitions a flat item list into ordered per-stage sequences.
package columns

import "github.com/thenoetrevino/pipeboard/internal/models"

// View is one rendered column: the stage and its items in display order
type View struct {
	Column models.Column
	Items  []models.Item
}

// Model is an immutable partition of items by stage. It is recomputed from
// the current item list on every render and answers the lookups drag
// resolution needs.
type Model struct {
	views []View

	columnIndex map[string]int // stage ID -> index into views
	stageOf     map[string]string
	indexOf     map[string]int // item ID -> index within its stage

	dropped int
}

// Partition groups items by StageID following the column order. Items keep
// their relative order from the input. Items whose stage matches no column
// are left out; duplicate column or item IDs keep the first occurrence.
func Partition(cols []models.Column, items []models.Item) *Model {
	m := &Model{
		views:       make([]View, 0, len(cols)),
		columnIndex: make(map[string]int, len(cols)),
		stageOf:     make(map[string]string, len(items)),
		indexOf:     make(map[string]int, len(items)),
	}

	for _, col := range cols {
		if _, dup := m.columnIndex[col.ID]; dup {
			continue
		}
		m.columnIndex[col.ID] = len(m.views)
		m.views = append(m.views, View{Column: col, Items: []models.Item{}})
	}

	for _, item := range items {
		idx, ok := m.columnIndex[item.StageID]
		if !ok {
			m.dropped++
			continue
		}
		if _, dup := m.stageOf[item.ID]; dup {
			m.dropped++
			continue
		}
		view := &m.views[idx]
		m.stageOf[item.ID] = item.StageID
		m.indexOf[item.ID] = len(view.Items)
		view.Items = append(view.Items, item.Clone())
	}

	return m
}

// Views returns a copy of the columns with their items
func (m *Model) Views() []View {
	out := make([]View, len(m.views))
	for i, v := range m.views {
		out[i] = View{Column: v.Column, Items: models.CloneItems(v.Items)}
	}
	return out
}

// Len returns the number of columns
func (m *Model) Len() int {
	return len(m.views)
}

// HasColumn reports whether id names a column on the board
func (m *Model) HasColumn(id string) bool {
	_, ok := m.columnIndex[id]
	return ok
}

// ColumnIndex returns the display index of a column
func (m *Model) ColumnIndex(id string) (int, bool) {
	idx, ok := m.columnIndex[id]
	return idx, ok
}

// StageOf returns the stage currently containing the item
func (m *Model) StageOf(itemID string) (string, bool) {
	stage, ok := m.stageOf[itemID]
	return stage, ok
}

// IndexOf returns the item's index within its stage
func (m *Model) IndexOf(itemID string) (int, bool) {
	idx, ok := m.indexOf[itemID]
	return idx, ok
}

// Item returns a copy of a rendered item
func (m *Model) Item(itemID string) (models.Item, bool) {
	stage, ok := m.stageOf[itemID]
	if !ok {
		return models.Item{}, false
	}
	return m.views[m.columnIndex[stage]].Items[m.indexOf[itemID]].Clone(), true
}

// ItemIDs returns the IDs of a stage's items in display order
func (m *Model) ItemIDs(stageID string) []string {
	idx, ok := m.columnIndex[stageID]
	if !ok {
		return nil
	}
	items := m.views[idx].Items
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// Dropped returns how many input items were excluded from presentation
func (m *Model) Dropped() int {
	return m.dropped
}
