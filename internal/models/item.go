package models

import "time"

// Item represents a single record on the pipeline board (a card)
type Item struct {
	ID        string            `json:"id"`               // Stable unique identifier
	StageID   string            `json:"stage_id"`         // ID of the stage (column) the item currently sits in
	Title     string            `json:"title"`            // Card title
	Notes     string            `json:"notes,omitempty"`  // Free-form markdown notes shown in the detail view
	Fields    map[string]string `json:"fields,omitempty"` // Arbitrary display payload (e.g. "company", "value")
	Position  int               `json:"position"`         // Position within the stage as stored
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Clone returns a deep copy of the item so callers never share the Fields map
func (i Item) Clone() Item {
	if i.Fields != nil {
		fields := make(map[string]string, len(i.Fields))
		for k, v := range i.Fields {
			fields[k] = v
		}
		i.Fields = fields
	}
	return i
}

// CloneItems deep-copies a slice of items
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// GetID returns the item's ID
func (i Item) GetID() string {
	return i.ID
}

// MoveToStageEnd returns a copy of items with itemID moved to the end of
// stageID, matching where the store appends it: after the stage's last item
// in the list, with the next free position. Unknown IDs leave items as is.
func MoveToStageEnd(items []Item, itemID, stageID string) []Item {
	idx := -1
	for i, item := range items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items
	}

	moved := items[idx]
	rest := make([]Item, 0, len(items))
	rest = append(rest, items[:idx]...)
	rest = append(rest, items[idx+1:]...)

	insertAt, next := idx, 0
	for i, item := range rest {
		if item.StageID != stageID {
			continue
		}
		insertAt = i + 1
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	moved.StageID = stageID
	moved.Position = next

	out := make([]Item, 0, len(items))
	out = append(out, rest[:insertAt]...)
	out = append(out, moved)
	return append(out, rest[insertAt:]...)
}
