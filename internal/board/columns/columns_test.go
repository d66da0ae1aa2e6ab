package columns

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

func testColumns() []models.Column {
	return []models.Column{
		{ID: "A", Title: "Lead"},
		{ID: "B", Title: "Won"},
	}
}

func TestPartition_GroupsByStageInOrder(t *testing.T) {
	items := []models.Item{
		{ID: "1", StageID: "A"},
		{ID: "3", StageID: "B"},
		{ID: "2", StageID: "A"},
	}

	m := Partition(testColumns(), items)

	require.Equal(t, 2, m.Len())
	if diff := cmp.Diff([]string{"1", "2"}, m.ItemIDs("A")); diff != "" {
		t.Errorf("stage A mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"3"}, m.ItemIDs("B")); diff != "" {
		t.Errorf("stage B mismatch (-want +got):\n%s", diff)
	}

	views := m.Views()
	assert.Equal(t, "Lead", views[0].Column.Title)
	assert.Equal(t, "Won", views[1].Column.Title)
}

// TestPartition_UnknownStageDropped ensures an item pointing at a missing
// stage is silently excluded rather than causing an error.
func TestPartition_UnknownStageDropped(t *testing.T) {
	items := []models.Item{
		{ID: "1", StageID: "A"},
		{ID: "9", StageID: "ghost"},
	}

	m := Partition(testColumns(), items)

	_, ok := m.StageOf("9")
	assert.False(t, ok)
	_, ok = m.Item("9")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Dropped())

	total := 0
	for _, v := range m.Views() {
		total += len(v.Items)
	}
	assert.Equal(t, 1, total)
}

func TestPartition_Lookups(t *testing.T) {
	items := []models.Item{
		{ID: "1", StageID: "A", Title: "Acme"},
		{ID: "2", StageID: "A", Title: "Globex"},
		{ID: "3", StageID: "B", Title: "Initech"},
	}
	m := Partition(testColumns(), items)

	stage, ok := m.StageOf("2")
	require.True(t, ok)
	assert.Equal(t, "A", stage)

	idx, ok := m.IndexOf("2")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = m.IndexOf("3")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	item, ok := m.Item("3")
	require.True(t, ok)
	assert.Equal(t, "Initech", item.Title)

	colIdx, ok := m.ColumnIndex("B")
	require.True(t, ok)
	assert.Equal(t, 1, colIdx)

	assert.True(t, m.HasColumn("A"))
	assert.False(t, m.HasColumn("1"))
	assert.Nil(t, m.ItemIDs("ghost"))
}

func TestPartition_EmptyColumnsStillRendered(t *testing.T) {
	m := Partition(testColumns(), nil)

	views := m.Views()
	require.Len(t, views, 2)
	assert.NotNil(t, views[0].Items)
	assert.Empty(t, views[0].Items)
}

func TestPartition_DuplicatesKeepFirst(t *testing.T) {
	cols := []models.Column{{ID: "A", Title: "first"}, {ID: "A", Title: "second"}}
	items := []models.Item{
		{ID: "1", StageID: "A", Title: "keep"},
		{ID: "1", StageID: "A", Title: "drop"},
	}

	m := Partition(cols, items)

	require.Equal(t, 1, m.Len())
	assert.Equal(t, "first", m.Views()[0].Column.Title)
	item, _ := m.Item("1")
	assert.Equal(t, "keep", item.Title)
	assert.Equal(t, 1, m.Dropped())
}

func TestViews_ReturnsCopies(t *testing.T) {
	items := []models.Item{{ID: "1", StageID: "A", Fields: map[string]string{"k": "v"}}}
	m := Partition(testColumns(), items)

	views := m.Views()
	views[0].Items[0].Title = "changed"
	views[0].Items[0].Fields["k"] = "changed"

	item, _ := m.Item("1")
	assert.Empty(t, item.Title)
	assert.Equal(t, "v", item.Fields["k"])
	assert.Equal(t, "v", items[0].Fields["k"], "input items are not aliased")
}
