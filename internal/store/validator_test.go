package store

import (
	"strings"
	"testing"

	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Type:    "conflict",
		Action:  "take_screenshot",
		Key:     "F11",
		Message: "key bound 2 times",
	}
	expected := "[conflict] F11 for 'take_screenshot': key bound 2 times"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "empty",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "errors and warnings",
			result: &ValidationResult{
				Errors:   []ValidationError{{Type: "invalid", Action: "x", Message: "unknown action"}},
				Warnings: []ValidationError{{Type: "warning", Action: "y", Message: "shadowed"}},
			},
			contains: []string{"Errors (1):", "Warnings (1):", "unknown action", "shadowed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name         string
		hotkeys      map[string]string
		wantErrors   int
		wantWarnings int
		wantType     string
	}{
		{
			name:         "defaults only warn about escape",
			hotkeys:      map[string]string{},
			wantErrors:   0,
			wantWarnings: 1,
		},
		{
			name:         "unknown action",
			hotkeys:      map[string]string{"self_destruct": "F1", "exit_fullscreen": ""},
			wantErrors:   1,
			wantWarnings: 0,
			wantType:     "invalid",
		},
		{
			name:         "bad key",
			hotkeys:      map[string]string{"take_screenshot": "ctrl+nope", "exit_fullscreen": ""},
			wantErrors:   1,
			wantWarnings: 0,
			wantType:     "invalid",
		},
		{
			name:         "shared descriptor",
			hotkeys:      map[string]string{"take_screenshot": "F11", "exit_fullscreen": ""},
			wantErrors:   1,
			wantWarnings: 0,
			wantType:     "conflict",
		},
		{
			name: "three way conflict",
			hotkeys: map[string]string{
				"take_screenshot": "F11",
				"exit_fullscreen": "f11",
			},
			wantErrors:   2,
			wantWarnings: 0,
			wantType:     "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(nil)
			result := v.ValidateFile(&File{Hotkeys: tt.hotkeys})

			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", result.Errors, tt.wantErrors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", result.Warnings, tt.wantWarnings)
			}
			if tt.wantType != "" && len(result.Errors) > 0 && result.Errors[0].Type != tt.wantType {
				t.Errorf("error type = %q, want %q", result.Errors[0].Type, tt.wantType)
			}
		})
	}
}

func TestValidateTable_ReservedKeys(t *testing.T) {
	table := hotkey.DefaultTable()
	table.MustGet(hotkey.ActionExitFullscreen).Keyboard = hotkey.Hotkey{}
	table.MustGet(hotkey.ActionTakeScreenshot).Keyboard = hotkey.MustParse("Q")

	v := NewValidator(map[hotkey.Hotkey]string{hotkey.MustParse("Q"): "q"})
	result := v.ValidateTable(table)

	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0].Message, `settings screen key "q"`) {
		t.Errorf("warning = %q", result.Warnings[0].Message)
	}
}

func TestFindConflicts(t *testing.T) {
	conflicts := FindConflicts(&File{Hotkeys: map[string]string{"take_screenshot": "F11"}})
	if len(conflicts) != 1 {
		t.Fatalf("FindConflicts() = %v, want 1 conflict", conflicts)
	}
	if !strings.Contains(conflicts[0], "toggle_fullscreen") {
		t.Errorf("conflict %q should name the other holder", conflicts[0])
	}
}
