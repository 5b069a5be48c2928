// Package tui provides the terminal user interface for tablero.
package tui

// renderKey identifies everything the rendered board depends on.
type renderKey struct {
	revision  uint64
	state     string
	width     int
	height    int
	cursor    Position
	mode      Mode
	offsets   string
	target    string
	hasTarget bool
	day       int
	theme     string
}

// RenderCache stores the last rendered board. The board is only redrawn
// when the session revision or the screen state in the key changes.
type RenderCache struct {
	key   renderKey
	board string
	valid bool
}

func (c *RenderCache) get(key renderKey) (string, bool) {
	if c == nil || !c.valid || c.key != key {
		return "", false
	}
	return c.board, true
}

func (c *RenderCache) put(key renderKey, board string) {
	if c == nil {
		return
	}
	c.key, c.board, c.valid = key, board, true
}
