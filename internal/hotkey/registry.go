package hotkey

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when an action has no registered handler
// or no binding.
var ErrUnknownAction = errors.New("unknown action")

// Handler runs a bound action.
type Handler func()

// Registry maps raw key descriptors to actions and actions to handlers.
// It is owned by the application and handed to whoever needs to look up
// or change bindings. Not safe for concurrent use.
type Registry struct {
	handlers map[Action]Handler
	keys     map[uint32]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Action]Handler),
		keys:     make(map[uint32]Action),
	}
}

// Handle installs the handler invoked for action.
func (r *Registry) Handle(action Action, h Handler) {
	r.handlers[action] = h
}

// Load binds every descriptor in the table. Unbound entries are skipped.
// If two entries share a descriptor the later one wins, matching what
// Bind would do; callers that care run the store validator first.
func (r *Registry) Load(t *Table) {
	clear(r.keys)
	for _, b := range t.All() {
		if raw := b.Keyboard.Raw(); raw > 0 {
			r.keys[raw] = b.Action
		}
	}
}

// Claimed reports whether any action already holds h.
func (r *Registry) Claimed(h Hotkey) bool {
	_, ok := r.keys[h.Raw()]
	return ok
}

// Lookup returns the action bound to h.
func (r *Registry) Lookup(h Hotkey) (Action, bool) {
	if h.IsZero() {
		return "", false
	}
	a, ok := r.keys[h.Raw()]
	return a, ok
}

// Bind inserts h -> action. Zero hotkeys are never inserted.
func (r *Registry) Bind(h Hotkey, action Action) {
	if raw := h.Raw(); raw > 0 {
		r.keys[raw] = action
	}
}

// Unbind evicts h.
func (r *Registry) Unbind(h Hotkey) {
	delete(r.keys, h.Raw())
}

// UnbindFor evicts h only while it still resolves to action, so an entry
// another action took over is left alone.
func (r *Registry) UnbindFor(h Hotkey, action Action) {
	if a, ok := r.Lookup(h); ok && a == action {
		delete(r.keys, h.Raw())
	}
}

// Len returns the number of bound descriptors.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Dispatch runs the handler bound to h and reports whether one ran.
func (r *Registry) Dispatch(h Hotkey) bool {
	action, ok := r.Lookup(h)
	if !ok {
		return false
	}
	handler, ok := r.handlers[action]
	if !ok || handler == nil {
		return false
	}
	handler()
	return true
}

// Invoke runs the handler for action directly.
func (r *Registry) Invoke(action Action) error {
	handler, ok := r.handlers[action]
	if !ok || handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	handler()
	return nil
}
