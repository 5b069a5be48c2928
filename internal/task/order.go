package task

import (
	"fmt"
	"slices"
	"strings"
)

// Grouping maps each status to its tasks sorted by order.
type Grouping map[Status][]*Task

// Count returns the number of tasks across all columns.
func (g Grouping) Count() int {
	n := 0
	for _, seq := range g {
		n += len(seq)
	}
	return n
}

// SortByOrder sorts tasks ascending by order. Ties are broken by the most
// recently updated first, then by id so the result is stable across stores.
func SortByOrder(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			if a.UpdatedAt.After(b.UpdatedAt) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// GroupAndSort buckets tasks by status and sorts every bucket.
// Every known status is present in the result, possibly empty.
// Tasks with an unknown status are dropped.
func GroupAndSort(tasks []*Task) Grouping {
	g := make(Grouping, len(Statuses()))
	for _, s := range Statuses() {
		g[s] = []*Task{}
	}
	for _, t := range tasks {
		if _, ok := g[t.Status]; !ok {
			continue
		}
		g[t.Status] = append(g[t.Status], t)
	}
	for _, seq := range g {
		SortByOrder(seq)
	}
	return g
}

// IsDense reports whether every task's order equals its position.
func IsDense(seq []*Task) bool {
	for i, t := range seq {
		if t.Order != i {
			return false
		}
	}
	return true
}

// Renumber assigns order = position to every task in seq and returns the
// tasks whose order changed.
func Renumber(seq []*Task) []*Task {
	var changed []*Task
	for i, t := range seq {
		if t.Order != i {
			t.Order = i
			changed = append(changed, t)
		}
	}
	return changed
}

// ClampIndex clamps i into [0, n] and reports whether clamping happened.
func ClampIndex(i, n int) (int, bool) {
	switch {
	case i < 0:
		return 0, true
	case i > n:
		return n, true
	default:
		return i, false
	}
}

// NextOrder returns the order for a task appended to seq: max+1, or 0 when
// seq is empty. Gaps left by deletes are not reused.
func NextOrder(seq []*Task) int {
	next := 0
	for _, t := range seq {
		if t.Order >= next {
			next = t.Order + 1
		}
	}
	return next
}

// Move removes the task at from and reinserts it at to within seq.
// Both indices must be in range.
func Move(seq []*Task, from, to int) []*Task {
	if from == to {
		return seq
	}
	t := seq[from]
	seq = slices.Delete(seq, from, from+1)
	return slices.Insert(seq, to, t)
}

// IndexOf returns the position of the task with id in seq, or -1.
func IndexOf(seq []*Task, id string) int {
	return slices.IndexFunc(seq, func(t *Task) bool { return t.ID == id })
}

// ReorderPlan is the outcome of moving one task within a project.
type ReorderPlan struct {
	Task    *Task   // moved task with its final status and order
	Source  Status  // column the task came from
	Changed []*Task // every task whose status or order changed, moved task included
	Clamped bool    // requested index was out of range
}

// PlanReorder computes a reorder over the tasks of one project without
// touching them. The target column is rebuilt without the moved task, the
// task is inserted at the clamped index and the column is renumbered densely.
// When the task changes column, the source column is renumbered as well.
// The returned tasks are clones.
func PlanReorder(tasks []*Task, id string, target Status, index int) (ReorderPlan, error) {
	if !target.Valid() {
		return ReorderPlan{}, fmt.Errorf("reorder %s: %w", id, ErrInvalidStatus)
	}

	var moved *Task
	var dest, rest []*Task
	for _, t := range tasks {
		if t.ID == id {
			moved = t.Clone()
			continue
		}
		switch {
		case t.Status == target:
			dest = append(dest, t.Clone())
		default:
			rest = append(rest, t)
		}
	}
	if moved == nil {
		return ReorderPlan{}, fmt.Errorf("reorder %s: %w", id, ErrTaskNotFound)
	}

	plan := ReorderPlan{Source: moved.Status}
	SortByOrder(dest)
	index, plan.Clamped = ClampIndex(index, len(dest))

	statusChanged := moved.Status != target
	moved.Status = target
	dest = slices.Insert(dest, index, moved)

	changed := Renumber(dest)
	if statusChanged && !slices.Contains(changed, moved) {
		changed = append(changed, moved)
	}

	if statusChanged {
		var src []*Task
		for _, t := range rest {
			if t.Status == plan.Source {
				src = append(src, t.Clone())
			}
		}
		SortByOrder(src)
		changed = append(changed, Renumber(src)...)
	}

	plan.Task = moved
	plan.Changed = changed
	return plan, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// normalizeTags trims, lowercases and dedupes tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// ParseTags splits a comma separated list into normalized tags.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalizeTags(strings.Split(s, ","))
}
