package pipeline

import "errors"

// Validation errors
var (
	ErrEmptyTitle     = errors.New("item title cannot be empty")
	ErrTitleTooLong   = errors.New("item title cannot exceed 255 characters")
	ErrInvalidItemID  = errors.New("invalid item ID")
	ErrInvalidStageID = errors.New("invalid stage ID")
)

// maxTitleLength bounds card titles so they stay renderable
const maxTitleLength = 255
