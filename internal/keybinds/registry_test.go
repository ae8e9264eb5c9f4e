package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

func TestRegistry_MatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		wantOK  bool
	}{
		{"settings key", ContextSettings, "ctrl+s", ActionSave, true},
		{"global from settings", ContextSettings, "ctrl+c", ActionQuitForce, true},
		{"global from help", ContextHelp, "ctrl+c", ActionQuitForce, true},
		{"esc left for hotkeys", ContextSettings, "esc", "", false},
		{"confirm", ContextConfirm, "y", ActionConfirm, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Match(%s, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistry_MatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	action, complete, partial := r.MatchMultiKey(ContextSettings, "g")
	if complete || !partial || action != "" {
		t.Fatalf("first g: got %q complete=%v partial=%v", action, complete, partial)
	}

	action, complete, partial = r.MatchMultiKey(ContextSettings, "g")
	if !complete || partial || action != ActionGoToTop {
		t.Fatalf("second g: got %q complete=%v partial=%v", action, complete, partial)
	}

	r.MatchMultiKey(ContextSettings, "g")
	r.ClearMultiKeyState(ContextSettings)
	action, complete, _ = r.MatchMultiKey(ContextSettings, "j")
	if !complete || action != ActionNavigateDown {
		t.Errorf("after clear: got %q complete=%v", action, complete)
	}
}

func TestRegistry_UnregisterAndGetBinding(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextSettings, ActionClearBinding); got != "backspace, delete, x" {
		t.Errorf("GetBindingString() = %q", got)
	}

	r.Unregister(ContextSettings, ActionClearBinding)
	if got := r.GetBindingString(ContextSettings, ActionClearBinding); got != "unbound" {
		t.Errorf("after Unregister = %q, want unbound", got)
	}
	if r.HasBinding(ContextSettings, "x") {
		t.Error("x should no longer be bound")
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	c := r.Clone()
	c.Register(ContextSettings, "w", ActionSave)

	if r.HasBinding(ContextSettings, "w") {
		t.Error("clone changes leaked into original")
	}
	if !c.HasBinding(ContextSettings, "w") {
		t.Error("clone lost its own binding")
	}
}

func TestHotkeyFor(t *testing.T) {
	tests := []struct {
		key    string
		want   hotkey.Hotkey
		wantOK bool
	}{
		{"q", hotkey.Hotkey{Key: hotkey.Code('Q')}, true},
		{"G", hotkey.Hotkey{Key: hotkey.Code('G'), Shift: true}, true},
		{" ", hotkey.Hotkey{Key: hotkey.CodeSpace}, true},
		{"ctrl+c", hotkey.Hotkey{Key: hotkey.Code('C'), Ctrl: true}, true},
		{"up", hotkey.Hotkey{Key: hotkey.CodeUp}, true},
		{"gg", hotkey.Hotkey{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := HotkeyFor(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("HotkeyFor(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRegistry_ReservedHotkeys(t *testing.T) {
	reserved := NewDefaultRegistry().ReservedHotkeys(ContextSettings)

	if got := reserved[hotkey.Hotkey{Key: hotkey.Code('S'), Ctrl: true}]; got != "ctrl+s" {
		t.Errorf("ctrl+s reserved as %q", got)
	}
	if _, ok := reserved[hotkey.Hotkey{Key: hotkey.CodeEscape}]; ok {
		t.Error("esc must not be reserved by the settings list")
	}
	if _, ok := reserved[hotkey.Hotkey{Key: hotkey.FunctionKey(11)}]; ok {
		t.Error("F11 must not be reserved by the settings list")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file gives defaults", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "none.json"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if action, ok := r.Match(ContextSettings, "ctrl+s"); !ok || action != ActionSave {
			t.Errorf("expected default save binding, got %q", action)
		}
	})

	t.Run("override replaces defaults", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.json")
		data := `{
  // comments are fine
  "version": "1.0",
  "settings": { "save": "ctrl+w, w" }
}`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if r.HasBinding(ContextSettings, "ctrl+s") {
			t.Error("ctrl+s should have been replaced")
		}
		for _, key := range []string{"ctrl+w", "w"} {
			if action, _ := r.Match(ContextSettings, key); action != ActionSave {
				t.Errorf("%s = %q, want save", key, action)
			}
		}
	})

	t.Run("unknown action fails", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"settings": {"explode": "e"}}`), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadOrDefault(path)
		if err == nil {
			t.Fatal("expected error for unknown action")
		}
		if !strings.Contains(err.Error(), "invalid keybinds.json") {
			t.Errorf("error = %v, want it to name keybinds.json", err)
		}
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	in := &Config{Version: "1.0", Help: map[string]string{"close_modal": "esc"}}

	if err := SaveConfig(in, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if out.Help["close_modal"] != "esc" {
		t.Errorf("help section = %v", out.Help)
	}
}

func TestExportConfigRoundTrip(t *testing.T) {
	exported := ExportConfig(NewDefaultRegistry())

	if got := exported.Settings[string(ActionClearBinding)]; got != "backspace, delete, x" {
		t.Errorf("exported clear_binding = %q", got)
	}

	r := NewRegistry()
	if err := ApplyConfig(r, exported); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	for _, key := range []string{" ", "space", "enter", "ctrl+c", "gg"} {
		want, _ := NewDefaultRegistry().Match(ContextSettings, key)
		if got, _ := r.Match(ContextSettings, key); got != want {
			t.Errorf("%q = %q after round trip, want %q", key, got, want)
		}
	}
}
