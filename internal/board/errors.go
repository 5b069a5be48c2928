package board

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/tablero/internal/task"
)

// Drag errors. All of them are recoverable: the caller aborts the single
// operation and the board stays consistent.
var (
	// ErrItemNotFound is returned when a drag starts on a task that is not on the board.
	ErrItemNotFound = fmt.Errorf("drag item %w", task.ErrTaskNotFound)
	// ErrStaleDrag is returned when the board changed underneath an active drag.
	ErrStaleDrag = errors.New("board changed during drag")
	// ErrNotDragging is returned by drag operations outside a drag.
	ErrNotDragging = errors.New("no drag in progress")
	// ErrAlreadyDragging is returned when a second drag starts.
	ErrAlreadyDragging = errors.New("already dragging a task")
	// ErrNotCommitting is returned when a commit result arrives with no commit pending.
	ErrNotCommitting = errors.New("no commit in progress")
	// ErrStaleEvent is returned for events older than the last applied one.
	ErrStaleEvent = errors.New("stale drag event")
)
