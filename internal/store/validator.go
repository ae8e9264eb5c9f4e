package store

import (
	"fmt"
	"strings"

	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

// ValidationError represents a hotkey validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Action  string
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s for '%s': %s", e.Type, e.Key, e.Action, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator checks hotkey files before they are applied
type Validator struct {
	// reserved are descriptors the settings screen uses for itself
	reserved map[uint32]string
}

// NewValidator creates a validator. reserved maps descriptors the
// settings screen consumes to the screen key name they come from.
func NewValidator(reserved map[hotkey.Hotkey]string) *Validator {
	v := &Validator{reserved: make(map[uint32]string, len(reserved))}
	for h, name := range reserved {
		v.reserved[h.Raw()] = name
	}
	return v
}

// ValidateFile validates a decoded file against the default action set
func (v *Validator) ValidateFile(f *File) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	table := hotkey.DefaultTable()
	for _, name := range sortedKeys(f.Hotkeys) {
		key := f.Hotkeys[name]
		b, ok := table.Get(hotkey.Action(name))
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Action:  name,
				Key:     key,
				Message: "unknown action",
			})
			continue
		}
		h, err := hotkey.Parse(key)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Action:  name,
				Key:     key,
				Message: err.Error(),
			})
			continue
		}
		b.Keyboard = h
	}

	v.checkTable(table, result)
	return result
}

// ValidateTable validates bindings already in memory
func (v *Validator) ValidateTable(table *hotkey.Table) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
	v.checkTable(table, result)
	return result
}

func (v *Validator) checkTable(table *hotkey.Table, result *ValidationResult) {
	v.checkDuplicateBindings(table, result)
	v.checkCapturable(table, result)
	v.checkReservedKeys(table, result)
}

// checkDuplicateBindings reports descriptors held by more than one action
func (v *Validator) checkDuplicateBindings(table *hotkey.Table, result *ValidationResult) {
	holders := make(map[uint32][]hotkey.Action)
	var order []uint32
	for _, b := range table.All() {
		raw := b.Keyboard.Raw()
		if raw == 0 {
			continue
		}
		if _, seen := holders[raw]; !seen {
			order = append(order, raw)
		}
		holders[raw] = append(holders[raw], b.Action)
	}

	for _, raw := range order {
		actions := holders[raw]
		if len(actions) < 2 {
			continue
		}
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		for _, a := range actions[1:] {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "conflict",
				Action:  string(a),
				Key:     hotkey.FromRaw(raw).String(),
				Message: fmt.Sprintf("key bound %d times (%s)", len(actions), strings.Join(names, ", ")),
			})
		}
	}
}

// checkCapturable warns about keys that the settings screen could not
// record again once cleared
func (v *Validator) checkCapturable(table *hotkey.Table, result *ValidationResult) {
	for _, b := range table.All() {
		if b.Keyboard.IsZero() || b.Keyboard.Key.IsCapturable() {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Type:    "warning",
			Action:  string(b.Action),
			Key:     b.Keyboard.String(),
			Message: "key cannot be captured from the settings screen",
		})
	}
}

// checkReservedKeys warns about hotkeys the settings screen handles first
func (v *Validator) checkReservedKeys(table *hotkey.Table, result *ValidationResult) {
	for _, b := range table.All() {
		name, ok := v.reserved[b.Keyboard.Raw()]
		if !ok || b.Keyboard.IsZero() {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Type:    "warning",
			Action:  string(b.Action),
			Key:     b.Keyboard.String(),
			Message: fmt.Sprintf("shadowed by settings screen key %q", name),
		})
	}
}

// FindConflicts finds all conflicting hotkeys in a file
func FindConflicts(f *File) []string {
	validator := NewValidator(nil)
	result := validator.ValidateFile(f)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}
