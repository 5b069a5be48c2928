package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/tablero/internal/task"
)

// Engine bundles a session with event ordering and commits for one project.
type Engine struct {
	session *Session
	coord   *Coordinator
	seq     Sequencer
	applied uint64
}

// NewEngine creates an engine with an empty board. Call Load to fill it.
func NewEngine(repo task.Repository, projectID string) *Engine {
	return &Engine{
		session: NewSession(nil),
		coord:   NewCoordinator(repo, projectID),
	}
}

// Session returns the drag session.
func (e *Engine) Session() *Session {
	return e.session
}

// Coordinator returns the commit coordinator.
func (e *Engine) Coordinator() *Coordinator {
	return e.coord
}

// Load refreshes the board from the repository. It returns ErrStaleDrag when
// the refresh invalidated an active drag.
func (e *Engine) Load(ctx context.Context) error {
	tasks, err := e.coord.Load(ctx)
	if err != nil {
		return err
	}
	return e.session.SetAuthoritative(tasks)
}

// Event builds an event stamped with the next sequence number.
func (e *Engine) Event(kind EventKind, itemID, targetID string, hasTarget bool) Event {
	return Event{
		Seq:       e.seq.Next(),
		Kind:      kind,
		ItemID:    itemID,
		TargetID:  targetID,
		HasTarget: hasTarget,
	}
}

// Apply dispatches ev to the session. Events not newer than the last applied
// one are dropped with ErrStaleEvent.
func (e *Engine) Apply(ev Event) (Outcome, error) {
	if ev.Seq <= e.applied {
		return Outcome{}, fmt.Errorf("%s #%d after #%d: %w", ev.Kind, ev.Seq, e.applied, ErrStaleEvent)
	}
	e.applied = ev.Seq

	switch ev.Kind {
	case DragStart:
		if err := e.session.Start(ev.ItemID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Changed: true}, nil
	case DragOver:
		if !ev.HasTarget {
			return Outcome{}, nil
		}
		changed, err := e.session.MoveOver(ev.TargetID)
		return Outcome{Changed: changed}, err
	case DragEnd:
		c, ok, err := e.session.Drop(ev.TargetID, ev.HasTarget)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Changed: !ok, Commit: c, HasCommit: ok}, nil
	case DragCancel:
		return Outcome{Changed: e.session.Cancel()}, nil
	default:
		return Outcome{}, fmt.Errorf("unknown event kind %s", ev.Kind)
	}
}

// Drop ends the drag and, when it produced a commit, persists it before
// returning. A failed commit rolls the board back and the error is returned
// for reporting only.
func (e *Engine) Drop(ctx context.Context, targetID string, hasTarget bool) (Outcome, error) {
	out, err := e.Apply(e.Event(DragEnd, "", targetID, hasTarget))
	if err != nil || !out.HasCommit {
		return out, err
	}
	tasks, commitErr := e.coord.Commit(ctx, out.Commit)
	if err := e.session.Complete(tasks, commitErr); err != nil {
		return out, err
	}
	out.Changed = true
	return out, commitErr
}

// IsRecoverable reports whether err is a drag error that leaves the board
// consistent, as opposed to a storage failure.
func IsRecoverable(err error) bool {
	for _, target := range []error{ErrItemNotFound, ErrStaleDrag, ErrNotDragging, ErrAlreadyDragging, ErrNotCommitting, ErrStaleEvent} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
