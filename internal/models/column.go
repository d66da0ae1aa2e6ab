package models

// Column represents a pipeline stage (e.g., "Lead", "Qualified", "Won")
// Slice order is display order, left to right.
type Column struct {
	ID    string `json:"id"`    // Unique identifier, referenced by Item.StageID
	Title string `json:"title"` // Display title
}

// GetID returns the stage ID
func (c Column) GetID() string {
	return c.ID
}
