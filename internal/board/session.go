package board

import (
	"fmt"

	"github.com/javiermolinar/tablero/internal/task"
)

// State is one of Idle, Dragging or Committing.
type State interface {
	isState()
	String() string
}

// Idle means no drag is active. The authoritative view is displayed.
type Idle struct{}

// Dragging means a task is being dragged over a live copy of the board.
type Dragging struct {
	ActiveID     string
	SourceStatus task.Status
	SourceIndex  int
	LastTargetID string
	Live         View
}

// Committing means a drop was accepted and the reorder is being persisted.
// Live stays displayed until the result arrives.
type Committing struct {
	ActiveID string
	Commit   Commit
	Live     View
}

func (Idle) isState()       {}
func (Dragging) isState()   {}
func (Committing) isState() {}

func (Idle) String() string       { return "idle" }
func (Dragging) String() string   { return "dragging" }
func (Committing) String() string { return "committing" }

// Commit is the final position of a dropped task.
type Commit struct {
	TaskID string
	Status task.Status
	Index  int
}

// Session tracks a single drag gesture over one project's board.
// It is not safe for concurrent use; one event loop owns it.
type Session struct {
	authoritative View
	state         State

	// pending holds data that arrived while committing. It replaces the
	// authoritative view if the commit fails.
	pending *View

	// revision changes whenever the displayed view changes.
	revision uint64

	// invalidated is set when an external change cancelled the drag. The
	// rest of that gesture is ignored until the next Start or Drop.
	invalidated bool
}

// NewSession creates an idle session over tasks.
func NewSession(tasks []*task.Task) *Session {
	return &Session{
		authoritative: Snapshot(tasks),
		state:         Idle{},
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Revision returns a counter that changes whenever Displayed changes.
func (s *Session) Revision() uint64 {
	return s.revision
}

// Authoritative returns the last view loaded from the repository.
func (s *Session) Authoritative() View {
	return s.authoritative
}

// Displayed returns the view to render: the live view while a drag or its
// commit is in flight, the authoritative view otherwise.
func (s *Session) Displayed() View {
	switch st := s.state.(type) {
	case Dragging:
		return st.Live
	case Committing:
		return st.Live
	default:
		return s.authoritative
	}
}

// ActiveID returns the dragged task, if any.
func (s *Session) ActiveID() (string, bool) {
	switch st := s.state.(type) {
	case Dragging:
		return st.ActiveID, true
	case Committing:
		return st.ActiveID, true
	default:
		return "", false
	}
}

// Start begins dragging id. The live view starts as a copy of the
// authoritative view.
func (s *Session) Start(id string) error {
	if _, idle := s.state.(Idle); !idle {
		return ErrAlreadyDragging
	}
	s.invalidated = false
	status, index, ok := s.authoritative.Locate(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrItemNotFound)
	}
	s.state = Dragging{
		ActiveID:     id,
		SourceStatus: status,
		SourceIndex:  index,
		Live:         s.authoritative.Clone(),
	}
	s.revision++
	return nil
}

// MoveOver moves the dragged task onto targetID in the live view and
// reports whether the live view changed. Repeating the last target, hovering
// an unknown id, or losing the dragged task are silent no-ops.
func (s *Session) MoveOver(targetID string) (bool, error) {
	d, ok := s.state.(Dragging)
	if !ok {
		return false, s.notDragging()
	}
	if targetID == d.LastTargetID {
		return false, nil
	}
	d.LastTargetID = targetID
	s.state = d

	from, fromIdx, ok := d.Live.Locate(d.ActiveID)
	if !ok {
		return false, nil
	}
	target, ok := ResolveID(d.Live, targetID)
	if !ok {
		return false, nil
	}

	if target.Status == from {
		// Hovering the own column's body keeps the current slot.
		if target.Column || target.Index == fromIdx {
			return false, nil
		}
		d.Live.move(from, fromIdx, from, target.Index)
	} else {
		d.Live.move(from, fromIdx, target.Status, target.Index)
	}
	s.revision++
	return true, nil
}

// MoveTo places the dragged task at index within status in the live view.
// It is the keyboard counterpart of MoveOver and forgets the last pointer
// target. The index is clamped.
func (s *Session) MoveTo(status task.Status, index int) (bool, error) {
	d, ok := s.state.(Dragging)
	if !ok {
		return false, ErrNotDragging
	}
	d.LastTargetID = ""
	s.state = d

	if !status.Valid() {
		return false, task.ErrInvalidStatus
	}
	from, fromIdx, ok := d.Live.Locate(d.ActiveID)
	if !ok {
		return false, nil
	}
	if from == status {
		index, _ = task.ClampIndex(index, d.Live.Len(status)-1)
		if index == fromIdx {
			return false, nil
		}
	}
	d.Live.move(from, fromIdx, status, index)
	s.revision++
	return true, nil
}

// Drop ends the drag. Without a target the drag is cancelled and no commit
// is returned. A drop ending a gesture that an external change already
// cancelled is a no-op. With a target the task is moved over it one last time, the
// final column and position are read from the live view and the session
// waits in Committing for Complete.
func (s *Session) Drop(targetID string, hasTarget bool) (Commit, bool, error) {
	if _, ok := s.state.(Dragging); !ok {
		err := s.notDragging()
		s.invalidated = false
		return Commit{}, false, err
	}
	if !hasTarget {
		s.reset()
		return Commit{}, false, nil
	}
	if _, err := s.MoveOver(targetID); err != nil {
		return Commit{}, false, err
	}

	d := s.state.(Dragging)
	status, index, ok := d.Live.Locate(d.ActiveID)
	if !ok {
		s.reset()
		return Commit{}, false, nil
	}

	c := Commit{TaskID: d.ActiveID, Status: status, Index: index}
	s.state = Committing{ActiveID: d.ActiveID, Commit: c, Live: d.Live}
	return c, true, nil
}

// Cancel abandons the drag and restores the authoritative view. It reports
// whether a drag was active.
func (s *Session) Cancel() bool {
	if _, ok := s.state.(Dragging); !ok {
		return false
	}
	s.reset()
	return true
}

// Complete ends a commit. On success tasks become the authoritative view.
// On failure the board rolls back to the last authoritative view, including
// any external update received while committing.
func (s *Session) Complete(tasks []*task.Task, err error) error {
	if _, ok := s.state.(Committing); !ok {
		return ErrNotCommitting
	}
	if err == nil {
		s.authoritative = Snapshot(tasks)
	} else if s.pending != nil {
		s.authoritative = *s.pending
	}
	s.pending = nil
	s.state = Idle{}
	s.revision++
	return nil
}

// SetAuthoritative replaces the board after an external change. An active
// drag is invalidated and ErrStaleDrag is returned. During a commit the data
// is held until Complete.
func (s *Session) SetAuthoritative(tasks []*task.Task) error {
	v := Snapshot(tasks)
	switch s.state.(type) {
	case Committing:
		s.pending = &v
		return nil
	case Dragging:
		s.authoritative = v
		s.reset()
		s.invalidated = true
		return ErrStaleDrag
	default:
		s.authoritative = v
		s.revision++
		return nil
	}
}

// notDragging is ErrNotDragging, or nil while the rest of an invalidated
// gesture drains.
func (s *Session) notDragging() error {
	if s.invalidated {
		return nil
	}
	return ErrNotDragging
}

func (s *Session) reset() {
	s.state = Idle{}
	s.pending = nil
	s.revision++
}
