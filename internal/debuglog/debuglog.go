// Package debuglog writes a JSONL trace of board input, drag events and
// session state for diagnosing gesture bugs.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/task"
)

// Path is the fixed path for debug logs.
const Path = "tablero-debug.log"

// Logger writes one JSON object per line.
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	closer  io.Closer
	enabled bool
	seq     int
}

// std is the process-wide logger. It starts disabled.
var std = &Logger{}

// New creates an enabled logger writing to w.
func New(w io.Writer) *Logger {
	out := log.New()
	out.SetOutput(w)
	out.SetLevel(log.DebugLevel)
	out.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "15:04:05.000",
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "ts",
			log.FieldKeyMsg:  "event",
		},
	})
	return &Logger{out: out, enabled: true}
}

// Init enables debug logging to Path when enabled is true.
func Init(enabled bool) error {
	return InitAt(enabled, Path)
}

// InitAt enables debug logging to path when enabled is true.
func InitAt(enabled bool, path string) error {
	if !enabled {
		std = &Logger{}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := New(f)
	l.closer = f
	std = l

	std.log("DEBUG_START", log.Fields{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// Close flushes the end marker and closes the log file.
func Close() {
	if !std.enabled {
		return
	}
	std.log("DEBUG_END", log.Fields{"time": time.Now().Format(time.RFC3339)})
	if std.closer != nil {
		_ = std.closer.Close()
	}
	std = &Logger{}
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return std.enabled
}

func (l *Logger) log(event string, fields log.Fields) {
	if l == nil || !l.enabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.out.WithFields(fields).WithField("seq", l.seq).Debug(event)
}

// LogKeyPress logs a key press.
func LogKeyPress(key string) {
	std.log("KEY_PRESS", log.Fields{"key": key})
}

// LogMouse logs a mouse action at a cell and the region under it.
func LogMouse(action string, x, y int, hit string) {
	std.log("MOUSE", log.Fields{
		"action": action,
		"x":      x,
		"y":      y,
		"hit":    hit,
	})
}

// LogDragEvent logs a gesture event and whether it changed the board.
func LogDragEvent(ev board.Event, out board.Outcome, err error) {
	fields := log.Fields{
		"seq_no":  ev.Seq,
		"kind":    ev.Kind.String(),
		"item":    ev.ItemID,
		"target":  ev.TargetID,
		"changed": out.Changed,
	}
	if !ev.HasTarget {
		fields["target"] = nil
	}
	if out.HasCommit {
		fields["commit"] = commitFields(out.Commit)
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	std.log("DRAG_EVENT", fields)
}

// LogTarget logs the resolved drop target.
func LogTarget(t board.Target, ok bool) {
	if !ok {
		std.log("TARGET", log.Fields{"resolved": false})
		return
	}
	std.log("TARGET", log.Fields{
		"resolved": true,
		"id":       t.ID,
		"status":   string(t.Status),
		"index":    t.Index,
		"via":      t.Via,
	})
}

// LogSession logs the session state and the displayed columns.
func LogSession(s *board.Session, action string) {
	if !std.enabled {
		return
	}

	fields := log.Fields{
		"action":   action,
		"state":    s.State().String(),
		"revision": s.Revision(),
	}
	if id, ok := s.ActiveID(); ok {
		fields["active"] = id
	}

	shown := s.Displayed()
	cols := make(map[string][]string, len(task.Statuses()))
	for _, status := range task.Statuses() {
		col := shown.Column(status)
		entries := make([]string, 0, len(col))
		for _, t := range col {
			entries = append(entries, fmt.Sprintf("%s@%d", t.ID, t.Order))
		}
		cols[string(status)] = entries
	}
	fields["columns"] = cols

	std.log("SESSION", fields)
}

// LogCommit logs a persisted drop.
func LogCommit(c board.Commit, err error) {
	fields := commitFields(c)
	if err != nil {
		fields["error"] = err.Error()
	}
	std.log("COMMIT", fields)
}

// LogError logs an error.
func LogError(context string, err error) {
	if err == nil {
		return
	}
	std.log("ERROR", log.Fields{
		"context": context,
		"error":   err.Error(),
	})
}

func commitFields(c board.Commit) log.Fields {
	return log.Fields{
		"task":   c.TaskID,
		"status": string(c.Status),
		"index":  c.Index,
	}
}
