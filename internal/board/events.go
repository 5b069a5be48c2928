package board

import (
	"fmt"
	"sync/atomic"
)

// EventKind is the kind of a gesture event.
type EventKind int

const (
	DragStart EventKind = iota
	DragOver
	DragEnd
	DragCancel
)

func (k EventKind) String() string {
	switch k {
	case DragStart:
		return "drag-start"
	case DragOver:
		return "drag-over"
	case DragEnd:
		return "drag-end"
	case DragCancel:
		return "drag-cancel"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one gesture event from the input layer.
type Event struct {
	Seq       uint64
	Kind      EventKind
	ItemID    string // dragged task, for DragStart
	TargetID  string // hovered task or column sentinel
	HasTarget bool   // false when the pointer is outside every droppable region
}

// Sequencer issues monotonic sequence numbers starting at 1.
type Sequencer struct {
	last atomic.Uint64
}

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Outcome describes what applying an event did.
type Outcome struct {
	Changed   bool   // displayed view changed
	Commit    Commit // valid when HasCommit
	HasCommit bool   // a drop produced a commit to persist
}
