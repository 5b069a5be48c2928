// Package board implements drag-to-reorder for a project's task columns:
// the live view, target resolution, the drag session and commits.
package board

import (
	"slices"

	"github.com/javiermolinar/tablero/internal/task"
)

// View is a grouped copy of a project's tasks, one ordered sequence per
// status. A View owns its tasks; nothing outside the package mutates them.
type View struct {
	cols task.Grouping
}

// Snapshot builds a View from tasks, cloning each one.
func Snapshot(tasks []*task.Task) View {
	cloned := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		cloned = append(cloned, t.Clone())
	}
	return View{cols: task.GroupAndSort(cloned)}
}

// Clone returns a deep copy.
func (v View) Clone() View {
	cols := make(task.Grouping, len(v.cols))
	for status, seq := range v.cols {
		c := make([]*task.Task, len(seq))
		for i, t := range seq {
			c[i] = t.Clone()
		}
		cols[status] = c
	}
	return View{cols: cols}
}

// Column returns the tasks of status in display order.
// The slice is a copy; the tasks are shared and must be treated as read-only.
func (v View) Column(status task.Status) []*task.Task {
	return slices.Clone(v.cols[status])
}

// Len returns the number of tasks in status.
func (v View) Len(status task.Status) int {
	return len(v.cols[status])
}

// Count returns the number of tasks in the view.
func (v View) Count() int {
	return v.cols.Count()
}

// Locate returns the column and position of the task with id.
func (v View) Locate(id string) (task.Status, int, bool) {
	for _, status := range task.Statuses() {
		if i := task.IndexOf(v.cols[status], id); i >= 0 {
			return status, i, true
		}
	}
	return "", -1, false
}

// Task returns the task with id.
func (v View) Task(id string) (*task.Task, bool) {
	status, i, ok := v.Locate(id)
	if !ok {
		return nil, false
	}
	return v.cols[status][i], true
}

// At returns the task at index in status.
func (v View) At(status task.Status, index int) (*task.Task, bool) {
	seq := v.cols[status]
	if index < 0 || index >= len(seq) {
		return nil, false
	}
	return seq[index], true
}

// Equal reports whether both views hold the same tasks in the same columns
// and order, with the same order values.
func (v View) Equal(other View) bool {
	for _, status := range task.Statuses() {
		a, b := v.cols[status], other.cols[status]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].ID != b[i].ID || a[i].Status != b[i].Status || a[i].Order != b[i].Order {
				return false
			}
		}
	}
	return true
}

// move relocates the task at (from, fromIdx) to (to, toIdx), rewriting its
// status and renumbering both columns. toIdx is clamped.
func (v View) move(from task.Status, fromIdx int, to task.Status, toIdx int) {
	if from == to {
		seq := v.cols[from]
		toIdx, _ = task.ClampIndex(toIdx, len(seq)-1)
		v.cols[from] = task.Move(seq, fromIdx, toIdx)
		task.Renumber(v.cols[from])
		return
	}

	src := v.cols[from]
	t := src[fromIdx]
	v.cols[from] = slices.Delete(src, fromIdx, fromIdx+1)

	dest := v.cols[to]
	toIdx, _ = task.ClampIndex(toIdx, len(dest))
	t.Status = to
	v.cols[to] = slices.Insert(dest, toIdx, t)

	task.Renumber(v.cols[from])
	task.Renumber(v.cols[to])
}
