package models

import "errors"

// Domain-specific errors for store lookups
var (
	// ErrItemNotFound indicates that no item exists with the requested ID
	ErrItemNotFound = errors.New("item not found")

	// ErrStageNotFound indicates that no stage exists with the requested ID
	ErrStageNotFound = errors.New("stage not found")
)
