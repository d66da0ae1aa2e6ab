package drag

import (
	"fmt"

	"github.com/thenoetrevino/pipeboard/internal/board/collision"
)

// OutcomeKind says what a finished drag should do to the board
type OutcomeKind int

const (
	Abort       OutcomeKind = iota // No target, invalid target, or dropped on itself
	NoOp                           // Dropped on the stage it came from
	StageChange                    // Move to another stage
	Reorder                        // Reorder within the origin stage
)

// String returns a short name for logging
func (k OutcomeKind) String() string {
	switch k {
	case Abort:
		return "abort"
	case NoOp:
		return "noop"
	case StageChange:
		return "stage-change"
	case Reorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// Outcome is the resolved result of a drag. Fields beyond Kind and ItemID
// are only meaningful for the matching kind.
type Outcome struct {
	Kind   OutcomeKind
	ItemID string
	Target collision.Target

	// StageChange
	FromStage string
	ToStage   string

	// Reorder (indices within FromStage)
	FromIndex int
	ToIndex   int
}

// Mutates reports whether applying the outcome changes the item list
func (o Outcome) Mutates() bool {
	return o.Kind == StageChange || o.Kind == Reorder
}

func (o Outcome) String() string {
	switch o.Kind {
	case StageChange:
		return fmt.Sprintf("stage-change %s: %s -> %s", o.ItemID, o.FromStage, o.ToStage)
	case Reorder:
		return fmt.Sprintf("reorder %s in %s: %d -> %d", o.ItemID, o.FromStage, o.FromIndex, o.ToIndex)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.ItemID)
	}
}
