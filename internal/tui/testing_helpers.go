package tui

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/history"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
	"github.com/studiowebux/hotkeyctl/internal/store"
)

// CreateTestModel creates a Model backed by a temporary hotkey file and
// history database. The model is sized to 100x30.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	tempDir := t.TempDir()

	hist, err := history.NewManager(filepath.Join(tempDir, "history.db"))
	if err != nil {
		t.Fatalf("Failed to open test history: %v", err)
	}

	m, err := New(Options{
		Store:          store.NewManager(filepath.Join(tempDir, "hotkeys.json")),
		History:        hist,
		Keybinds:       keybinds.NewDefaultRegistry(),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		ScreenshotsDir: filepath.Join(tempDir, "screenshots"),
		Clipboard:      func(string) error { return nil },
	})
	if err != nil {
		hist.Close()
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// pressKey sends a key message built from its string form
func pressKey(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(keyMsg(k))
	return cmd
}

// keyMsg builds the message bubbletea sends for k
func keyMsg(k string) tea.KeyMsg {
	named := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEscape,
		"tab":       tea.KeyTab,
		"backspace": tea.KeyBackspace,
		"delete":    tea.KeyDelete,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"space":     tea.KeySpace,
		"f9":        tea.KeyF9,
		"f10":       tea.KeyF10,
		"f11":       tea.KeyF11,
		"f12":       tea.KeyF12,
		"ctrl+c":    tea.KeyCtrlC,
		"ctrl+s":    tea.KeyCtrlS,
		"ctrl+r":    tea.KeyCtrlR,
	}
	if t, ok := named[k]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	if len(k) > 4 && k[:4] == "alt+" {
		msg := keyMsg(k[4:])
		msg.Alt = true
		return msg
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
