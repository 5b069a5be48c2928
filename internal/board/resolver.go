package board

import (
	"strings"

	"github.com/javiermolinar/tablero/internal/task"
)

// HitKind describes how a region was hit.
type HitKind int

const (
	// HitPointer means the pointer lies inside the region.
	HitPointer HitKind = iota
	// HitRect means the dragged card's box intersects the region.
	HitRect
)

func (k HitKind) String() string {
	if k == HitPointer {
		return "pointer"
	}
	return "rect"
}

// Collision is one droppable region hit by the pointer-intersection test.
// ID is a task id or a column sentinel from ColumnID.
type Collision struct {
	ID   string
	Kind HitKind
}

const columnPrefix = "column:"

// ColumnID returns the sentinel id of a status column.
func ColumnID(status task.Status) string {
	return columnPrefix + string(status)
}

// ParseColumnID extracts the status from a column sentinel id.
func ParseColumnID(id string) (task.Status, bool) {
	rest, ok := strings.CutPrefix(id, columnPrefix)
	if !ok {
		return "", false
	}
	status := task.Status(rest)
	return status, status.Valid()
}

// Target is a resolved drop position in a view.
type Target struct {
	ID     string      // collision id that produced the target
	Status task.Status // column the dragged task would land in
	Index  int         // position of the hovered task, or the column length for sentinels
	Column bool        // true when a bare column was hit
	Via    string      // strategy that produced the target, empty for ResolveID
}

type strategy struct {
	name   string
	kind   HitKind
	column bool
}

// strategies run in priority order: item beats column, pointer
// containment beats box intersection.
var strategies = []strategy{
	{name: "pointer-item", kind: HitPointer, column: false},
	{name: "pointer-column", kind: HitPointer, column: true},
	{name: "rect-item", kind: HitRect, column: false},
	{name: "rect-column", kind: HitRect, column: true},
}

// Resolve picks the drop target among hits. The first strategy that
// resolves wins; within a strategy, hits keep their given order. Item ids
// that are not in v are skipped. ok is false when nothing resolves, which
// callers treat as "no valid target", not as "same position".
func Resolve(v View, hits []Collision) (Target, bool) {
	for _, s := range strategies {
		for _, h := range hits {
			if h.Kind != s.kind {
				continue
			}
			_, isColumn := ParseColumnID(h.ID)
			if isColumn != s.column {
				continue
			}
			if t, ok := ResolveID(v, h.ID); ok {
				t.Via = s.name
				return t, true
			}
		}
	}
	return Target{}, false
}

// ResolveID resolves a single collision id against v.
func ResolveID(v View, id string) (Target, bool) {
	if id == "" {
		return Target{}, false
	}
	if status, ok := ParseColumnID(id); ok {
		return Target{ID: id, Status: status, Index: v.Len(status), Column: true}, true
	}
	if strings.HasPrefix(id, columnPrefix) {
		return Target{}, false
	}
	status, i, ok := v.Locate(id)
	if !ok {
		return Target{}, false
	}
	return Target{ID: id, Status: status, Index: i}, true
}
