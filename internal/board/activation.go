package board

// DefaultThreshold is the distance in cells a pressed pointer must travel
// before a drag starts.
const DefaultThreshold = 1

// Activator turns raw pointer input into drag starts. A press arms it, and
// the drag starts once the pointer has moved Threshold cells away
// (Chebyshev distance), so plain clicks never start a drag.
type Activator struct {
	Threshold int

	armed  bool
	active bool
	itemID string
	x, y   int
}

// NewActivator creates an Activator. Thresholds below 1 use DefaultThreshold.
func NewActivator(threshold int) *Activator {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Activator{Threshold: threshold}
}

// Press records a pointer press at (x, y) on itemID. Pressing empty space
// (itemID == "") arms nothing.
func (a *Activator) Press(itemID string, x, y int) {
	a.active = false
	a.armed = itemID != ""
	a.itemID = itemID
	a.x, a.y = x, y
}

// Move reports the item to start dragging the first time the pointer
// crosses the threshold after a press.
func (a *Activator) Move(x, y int) (string, bool) {
	if !a.armed || a.active {
		return "", false
	}
	if max(abs(x-a.x), abs(y-a.y)) < a.Threshold {
		return "", false
	}
	a.active = true
	return a.itemID, true
}

// Active reports whether a drag started since the last press.
func (a *Activator) Active() bool {
	return a.active
}

// Pressed returns the item under the last press, if still armed.
func (a *Activator) Pressed() (string, bool) {
	return a.itemID, a.armed
}

// Release ends the gesture and reports whether it had become a drag.
func (a *Activator) Release() bool {
	wasActive := a.active
	a.armed, a.active, a.itemID = false, false, ""
	return wasActive
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
