package debuglog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/task"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := std
	std = New(&buf)
	t.Cleanup(func() { std = prev })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", sc.Text(), err)
		}
		out = append(out, m)
	}
	return out
}

func TestDisabledLoggerWritesNothing(t *testing.T) {
	prev := std
	t.Cleanup(func() { std = prev })

	if err := InitAt(false, filepath.Join(t.TempDir(), "x.log")); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	if Enabled() {
		t.Fatal("expected disabled logger")
	}
	LogKeyPress("q")
	LogError("ctx", errors.New("boom"))
	Close()
}

func TestInitAt_WritesFile(t *testing.T) {
	prev := std
	t.Cleanup(func() { std = prev })

	path := filepath.Join(t.TempDir(), "debug.log")
	if err := InitAt(true, path); err != nil {
		t.Fatalf("InitAt failed: %v", err)
	}
	LogKeyPress("j")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	got := entries(t, bytes.NewBuffer(data))
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	for i, want := range []string{"DEBUG_START", "KEY_PRESS", "DEBUG_END"} {
		if got[i]["event"] != want {
			t.Errorf("entry %d event = %v, want %s", i, got[i]["event"], want)
		}
		if got[i]["seq"] != float64(i+1) {
			t.Errorf("entry %d seq = %v, want %d", i, got[i]["seq"], i+1)
		}
	}
	if Enabled() {
		t.Error("Close should disable logging")
	}
}

func TestLogDragEvent(t *testing.T) {
	buf := capture(t)

	LogDragEvent(board.Event{Seq: 7, Kind: board.DragEnd, TargetID: "t-2", HasTarget: true},
		board.Outcome{HasCommit: true, Commit: board.Commit{TaskID: "t-1", Status: task.StatusDone, Index: 0}}, nil)
	LogDragEvent(board.Event{Seq: 8, Kind: board.DragOver}, board.Outcome{}, errors.New("late"))

	got := entries(t, buf)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0]["kind"] != "drag-end" || got[0]["target"] != "t-2" {
		t.Errorf("unexpected first entry %v", got[0])
	}
	commit, ok := got[0]["commit"].(map[string]any)
	if !ok || commit["task"] != "t-1" || commit["status"] != "done" {
		t.Errorf("unexpected commit %v", got[0]["commit"])
	}
	if got[1]["target"] != nil {
		t.Errorf("target = %v, want null", got[1]["target"])
	}
	if got[1]["error"] != "late" {
		t.Errorf("error = %v, want late", got[1]["error"])
	}
}

func TestLogSession(t *testing.T) {
	buf := capture(t)

	a, _ := task.New("p-1", "A", task.StatusTodo, task.PriorityLow)
	a.ID = "t-a"
	s := board.NewSession([]*task.Task{a})
	if err := s.Start("t-a"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	LogSession(s, "start")

	got := entries(t, buf)
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0]["state"] != "dragging" || got[0]["active"] != "t-a" {
		t.Errorf("unexpected entry %v", got[0])
	}
	cols := got[0]["columns"].(map[string]any)
	todo := cols["todo"].([]any)
	if len(todo) != 1 || todo[0] != "t-a@0" {
		t.Errorf("todo = %v, want [t-a@0]", todo)
	}
}

func TestLogError_IgnoresNil(t *testing.T) {
	buf := capture(t)
	LogError("load", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
