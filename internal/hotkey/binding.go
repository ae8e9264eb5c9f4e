package hotkey

import "fmt"

// Action identifies a host application command that can own a hotkey.
type Action string

const (
	ActionToggleFullscreen    Action = "toggle_fullscreen"
	ActionToggleFullscreenAlt Action = "toggle_fullscreen_alt"
	ActionExitFullscreen      Action = "exit_fullscreen"
	ActionTakeScreenshot      Action = "take_screenshot"
)

// Binding associates an action with its keyboard hotkey.
type Binding struct {
	Action   Action
	Label    string
	Keyboard Hotkey
}

// Table is the ordered set of configurable bindings. Order is the order
// the settings screen lists them in.
type Table struct {
	bindings []*Binding
	index    map[Action]*Binding
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[Action]*Binding)}
}

// DefaultTable returns the host application's stock bindings.
func DefaultTable() *Table {
	t := NewTable()
	t.Add(ActionToggleFullscreen, "Toggle fullscreen", MustParse("F11"))
	t.Add(ActionToggleFullscreenAlt, "Toggle fullscreen (alt)", MustParse("ALT + Enter"))
	t.Add(ActionExitFullscreen, "Exit fullscreen", MustParse("Esc"))
	t.Add(ActionTakeScreenshot, "Take screenshot", MustParse("F12"))
	return t
}

// Add appends a binding. Adding an action twice replaces its hotkey and
// label but keeps its original position.
func (t *Table) Add(action Action, label string, h Hotkey) *Binding {
	if b, ok := t.index[action]; ok {
		b.Label = label
		b.Keyboard = h
		return b
	}
	b := &Binding{Action: action, Label: label, Keyboard: h}
	t.bindings = append(t.bindings, b)
	t.index[action] = b
	return b
}

// Get returns the binding for action.
func (t *Table) Get(action Action) (*Binding, bool) {
	b, ok := t.index[action]
	return b, ok
}

// MustGet is Get for callers that already validated action.
func (t *Table) MustGet(action Action) *Binding {
	b, ok := t.index[action]
	if !ok {
		panic(fmt.Sprintf("hotkey: no binding for %q", action))
	}
	return b
}

// All returns the bindings in display order.
func (t *Table) All() []*Binding {
	return t.bindings
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// At returns the i-th binding in display order.
func (t *Table) At(i int) *Binding {
	if i < 0 || i >= len(t.bindings) {
		return nil
	}
	return t.bindings[i]
}

// Index returns the display position of action, or -1.
func (t *Table) Index(action Action) int {
	for i, b := range t.bindings {
		if b.Action == action {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := NewTable()
	for _, b := range t.bindings {
		c.Add(b.Action, b.Label, b.Keyboard)
	}
	return c
}

// Holder returns the action currently holding h in the table, if any.
func (t *Table) Holder(h Hotkey) (Action, bool) {
	if h.IsZero() {
		return "", false
	}
	for _, b := range t.bindings {
		if b.Keyboard.Raw() == h.Raw() {
			return b.Action, true
		}
	}
	return "", false
}
