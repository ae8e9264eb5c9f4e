package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "hotkeys.json"))

	table, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.MustGet(hotkey.ActionToggleFullscreen).Keyboard.String(); got != "F11" {
		t.Errorf("toggle_fullscreen = %q, want F11", got)
	}
}

func TestLoad_JSONWithComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.json")
	content := `{
  // user overrides
  "version": "1.0",
  "hotkeys": {
    "take_screenshot": "ctrl+shift+s",
    "exit_fullscreen": "", // cleared
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.MustGet(hotkey.ActionTakeScreenshot).Keyboard.String(); got != "CTRL + SHIFT + S" {
		t.Errorf("take_screenshot = %q, want CTRL + SHIFT + S", got)
	}
	if !table.MustGet(hotkey.ActionExitFullscreen).Keyboard.IsZero() {
		t.Error("exit_fullscreen should be cleared")
	}
	if got := table.MustGet(hotkey.ActionToggleFullscreen).Keyboard.String(); got != "F11" {
		t.Errorf("untouched binding = %q, want F11", got)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.yaml")
	content := "version: \"1.0\"\nhotkeys:\n  toggle_fullscreen: F10\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.MustGet(hotkey.ActionToggleFullscreen).Keyboard.String(); got != "F10" {
		t.Errorf("toggle_fullscreen = %q, want F10", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed", `{"hotkeys": `, "invalid hotkeys.json format"},
		{"unknown action", `{"hotkeys": {"launch_rockets": "F1"}}`, `unknown action "launch_rockets"`},
		{"bad key", `{"hotkeys": {"take_screenshot": "hyper+x"}}`, "take_screenshot"},
		{"duplicate key", `{"hotkeys": {"take_screenshot": "F11"}}`, "F11 is bound to both toggle_fullscreen and take_screenshot"},
		{"duplicate within file", `{"hotkeys": {"toggle_fullscreen": "F5", "take_screenshot": "F5"}}`, "F5 is bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hotkeys.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			_, err := NewManager(path).Load()
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"hotkeys.json", "hotkeys.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			m := NewManager(path)

			table := hotkey.DefaultTable()
			table.MustGet(hotkey.ActionTakeScreenshot).Keyboard = hotkey.MustParse("alt+p")
			table.MustGet(hotkey.ActionExitFullscreen).Keyboard = hotkey.Hotkey{}

			if err := m.Save(table); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Error("temporary file left behind")
			}

			loaded, err := m.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			for _, b := range table.All() {
				if got := loaded.MustGet(b.Action).Keyboard; got != b.Keyboard {
					t.Errorf("%s = %+v, want %+v", b.Action, got, b.Keyboard)
				}
			}
		})
	}
}

func TestCreateExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.json")
	if err := CreateExampleConfig(path); err != nil {
		t.Fatalf("CreateExampleConfig() error = %v", err)
	}

	f, err := NewManager(path).ReadFile()
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if f.Version != FileVersion {
		t.Errorf("Version = %q, want %q", f.Version, FileVersion)
	}
	if f.Hotkeys["take_screenshot"] != "F12" {
		t.Errorf("take_screenshot = %q, want F12", f.Hotkeys["take_screenshot"])
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotkeys.json")
	m := NewManager(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := m.Save(hotkey.DefaultTable()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
