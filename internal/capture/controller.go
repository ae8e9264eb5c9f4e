package capture

import (
	"fmt"
	"log/slog"

	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

// ActiveLabel is shown on a control while it waits for a key.
const ActiveLabel = "_"

// Outcome describes what an input event did.
type Outcome int

const (
	OutcomeIgnored       Outcome = iota // no capture in progress
	OutcomeStarted                      // capture mode entered
	OutcomeAlreadyActive                // control was already capturing
	OutcomeRejected                     // escape, none or modifier-only key
	OutcomeUnchanged                    // key equals the current binding, or nothing to clear
	OutcomeConflict                     // key is held by another action
	OutcomeCommitted                    // new hotkey stored
	OutcomeCancelled                    // capture abandoned
	OutcomeCleared                      // binding removed
)

var outcomeNames = map[Outcome]string{
	OutcomeIgnored:       "ignored",
	OutcomeStarted:       "started",
	OutcomeAlreadyActive: "already_active",
	OutcomeRejected:      "rejected",
	OutcomeUnchanged:     "unchanged",
	OutcomeConflict:      "conflict",
	OutcomeCommitted:     "committed",
	OutcomeCancelled:     "cancelled",
	OutcomeCleared:       "cleared",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Change is a committed edit to one binding.
type Change struct {
	Action hotkey.Action
	Old    hotkey.Hotkey
	New    hotkey.Hotkey
	Source string
}

// Recorder receives every committed change.
type Recorder interface {
	RecordChange(Change) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder sends committed changes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSource tags recorded changes with where they came from ("tui", "cli").
func WithSource(s string) Option {
	return func(c *Controller) { c.source = s }
}

// Controller runs the capture-and-rebind protocol for a table of bindings.
// At most one control captures at a time. Every edit keeps the registry in
// step with the table: the old descriptor is evicted before the new one is
// inserted. Not safe for concurrent use; drive it from one event loop.
type Controller struct {
	table    *hotkey.Table
	registry *hotkey.Registry

	active    hotkey.Action
	capturing bool
	dirty     bool

	recorder Recorder
	logger   *slog.Logger
	source   string
}

// New creates a controller over table and registry. The registry is
// expected to already reflect table (see hotkey.Registry.Load).
func New(table *hotkey.Table, registry *hotkey.Registry, opts ...Option) *Controller {
	c := &Controller{
		table:    table,
		registry: registry,
		logger:   slog.Default(),
		source:   "tui",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the bindings being edited.
func (c *Controller) Table() *hotkey.Table { return c.table }

// Registry returns the lookup table kept in step with Table.
func (c *Controller) Registry() *hotkey.Registry { return c.registry }

// Dirty reports whether any binding changed since the last save.
func (c *Controller) Dirty() bool { return c.dirty }

// MarkSaved clears the dirty flag.
func (c *Controller) MarkSaved() { c.dirty = false }

// Active returns the control currently capturing.
func (c *Controller) Active() (hotkey.Action, bool) {
	return c.active, c.capturing
}

// Capturing reports whether a capture session is open.
func (c *Controller) Capturing() bool { return c.capturing }

// Label is the text the control for action should display.
func (c *Controller) Label(action hotkey.Action) string {
	if c.capturing && c.active == action {
		return ActiveLabel
	}
	b, ok := c.table.Get(action)
	if !ok {
		return ""
	}
	return b.Keyboard.String()
}

// Activate puts the control for action into capture mode. Clicking the
// control that is already capturing does nothing; clicking another one
// first restores the previous control.
func (c *Controller) Activate(action hotkey.Action) (Outcome, error) {
	if _, ok := c.table.Get(action); !ok {
		return OutcomeIgnored, fmt.Errorf("%w: %s", hotkey.ErrUnknownAction, action)
	}
	if c.capturing {
		if c.active == action {
			return OutcomeAlreadyActive, nil
		}
		c.finalize()
	}
	c.active = action
	c.capturing = true
	c.logger.Debug("capture started", "action", action)
	return OutcomeStarted, nil
}

// KeyUp feeds a key release to the capturing control. Whatever the
// outcome, capture mode ends.
func (c *Controller) KeyUp(ev hotkey.KeyEvent) Outcome {
	if !c.capturing {
		return OutcomeIgnored
	}
	defer c.finalize()

	if !ev.Capturable() {
		c.logger.Debug("capture rejected", "action", c.active, "code", int(ev.Code))
		return OutcomeRejected
	}

	return c.commit(c.table.MustGet(c.active), ev.Hotkey())
}

// Assign binds h to action outside a capture session. Unlike Set it takes
// keys a user could not press into a control, such as a stock Esc
// binding, but the conflict rules are the same.
func (c *Controller) Assign(action hotkey.Action, h hotkey.Hotkey) (Outcome, error) {
	b, ok := c.table.Get(action)
	if !ok {
		return OutcomeIgnored, fmt.Errorf("%w: %s", hotkey.ErrUnknownAction, action)
	}
	c.Cancel()
	if h.IsZero() {
		return c.SecondaryClick(action)
	}
	return c.commit(b, h), nil
}

func (c *Controller) commit(b *hotkey.Binding, next hotkey.Hotkey) Outcome {
	old := b.Keyboard
	if next.Raw() == old.Raw() {
		return OutcomeUnchanged
	}
	if c.registry.Claimed(next) {
		holder, _ := c.registry.Lookup(next)
		c.logger.Debug("capture conflict", "action", b.Action, "key", next.String(), "held_by", holder)
		return OutcomeConflict
	}

	c.registry.UnbindFor(old, b.Action)
	c.registry.Bind(next, b.Action)
	b.Keyboard = next
	c.dirty = true
	c.record(b.Action, old, next)
	c.logger.Info("hotkey bound", "action", b.Action, "old", old.String(), "new", next.String())
	return OutcomeCommitted
}

// SecondaryClick is the cancel gesture on the control for action. During
// capture it abandons the session. Otherwise it clears the binding.
func (c *Controller) SecondaryClick(action hotkey.Action) (Outcome, error) {
	if c.capturing {
		c.finalize()
		return OutcomeCancelled, nil
	}
	b, ok := c.table.Get(action)
	if !ok {
		return OutcomeIgnored, fmt.Errorf("%w: %s", hotkey.ErrUnknownAction, action)
	}
	if b.Keyboard.IsZero() {
		return OutcomeUnchanged, nil
	}

	old := b.Keyboard
	c.registry.UnbindFor(old, action)
	b.Keyboard = hotkey.Hotkey{}
	c.dirty = true
	c.record(action, old, hotkey.Hotkey{})
	c.logger.Info("hotkey cleared", "action", action, "old", old.String())
	return OutcomeCleared, nil
}

// Cancel ends any capture session without changes.
func (c *Controller) Cancel() {
	if c.capturing {
		c.finalize()
	}
}

// Set runs a full capture for action with the given hotkey, as if the
// user had activated the control and pressed it.
func (c *Controller) Set(action hotkey.Action, h hotkey.Hotkey) (Outcome, error) {
	if _, err := c.Activate(action); err != nil {
		return OutcomeIgnored, err
	}
	return c.KeyUp(hotkey.KeyEvent{Code: h.Key, Alt: h.Alt, Ctrl: h.Ctrl, Shift: h.Shift}), nil
}

// Reset replaces every binding with those in t, reloads the registry and
// forgets pending changes. Used when the hotkey file changes on disk.
func (c *Controller) Reset(t *hotkey.Table) {
	c.Cancel()
	for _, b := range t.All() {
		c.table.Add(b.Action, b.Label, b.Keyboard)
	}
	c.registry.Load(c.table)
	c.dirty = false
}

func (c *Controller) finalize() {
	c.logger.Debug("capture finished", "action", c.active, "label", c.table.MustGet(c.active).Keyboard.String())
	c.active = ""
	c.capturing = false
}

func (c *Controller) record(action hotkey.Action, old, next hotkey.Hotkey) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.RecordChange(Change{Action: action, Old: old, New: next, Source: c.source})
	if err != nil {
		c.logger.Warn("failed to record hotkey change", "action", action, "error", err)
	}
}
