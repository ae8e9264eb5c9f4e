package hotkey

import (
	"errors"
	"testing"
)

func TestRegistry_LoadSkipsUnbound(t *testing.T) {
	table := DefaultTable()
	table.MustGet(ActionExitFullscreen).Keyboard = Hotkey{}

	r := NewRegistry()
	r.Load(table)

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if action, ok := r.Lookup(MustParse("F11")); !ok || action != ActionToggleFullscreen {
		t.Errorf("Lookup(F11) = %q, %v", action, ok)
	}
	if _, ok := r.Lookup(Hotkey{}); ok {
		t.Error("zero hotkey should never resolve")
	}
}

func TestRegistry_BindUnbind(t *testing.T) {
	r := NewRegistry()
	h := MustParse("ctrl+p")

	r.Bind(h, ActionTakeScreenshot)
	if !r.Claimed(h) {
		t.Fatal("expected hotkey to be claimed after Bind")
	}

	r.Unbind(h)
	if r.Claimed(h) {
		t.Error("expected hotkey to be free after Unbind")
	}

	r.Bind(Hotkey{}, ActionTakeScreenshot)
	if r.Len() != 0 {
		t.Errorf("binding the zero hotkey should be a no-op, Len() = %d", r.Len())
	}
}

func TestRegistry_UnbindFor(t *testing.T) {
	h := MustParse("F5")
	tests := []struct {
		name   string
		action Action
		want   bool
	}{
		{"current holder", ActionTakeScreenshot, false},
		{"other action", ActionToggleFullscreen, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Bind(h, ActionTakeScreenshot)
			r.UnbindFor(h, tt.action)
			if got := r.Claimed(h); got != tt.want {
				t.Errorf("Claimed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry()
	r.Load(DefaultTable())

	var toggles, shots int
	r.Handle(ActionToggleFullscreen, func() { toggles++ })
	r.Handle(ActionToggleFullscreenAlt, func() { toggles++ })
	r.Handle(ActionTakeScreenshot, func() { shots++ })

	tests := []struct {
		name string
		key  Hotkey
		ran  bool
	}{
		{"primary toggle", MustParse("F11"), true},
		{"alt toggle", MustParse("alt+enter"), true},
		{"screenshot", MustParse("F12"), true},
		{"bound without handler", MustParse("esc"), false},
		{"unbound", MustParse("ctrl+q"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Dispatch(tt.key); got != tt.ran {
				t.Errorf("Dispatch(%s) = %v, want %v", tt.key, got, tt.ran)
			}
		})
	}

	if toggles != 2 {
		t.Errorf("toggles = %d, want 2", toggles)
	}
	if shots != 1 {
		t.Errorf("shots = %d, want 1", shots)
	}
}

func TestRegistry_Invoke(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Handle(ActionExitFullscreen, func() { called = true })

	if err := r.Invoke(ActionExitFullscreen); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !called {
		t.Error("handler not called")
	}

	if err := r.Invoke("nope"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Invoke(nope) error = %v, want ErrUnknownAction", err)
	}
}

func TestTable_AddKeepsPosition(t *testing.T) {
	table := DefaultTable()
	table.Add(ActionToggleFullscreen, "Fullscreen", MustParse("F10"))

	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}
	if table.Index(ActionToggleFullscreen) != 0 {
		t.Errorf("Index() = %d, want 0", table.Index(ActionToggleFullscreen))
	}
	if got := table.At(0).Keyboard.String(); got != "F10" {
		t.Errorf("At(0).Keyboard = %q, want F10", got)
	}
}

func TestTable_CloneIsDeep(t *testing.T) {
	table := DefaultTable()
	clone := table.Clone()
	clone.MustGet(ActionTakeScreenshot).Keyboard = MustParse("P")

	if table.MustGet(ActionTakeScreenshot).Keyboard.String() != "F12" {
		t.Error("mutating the clone changed the original")
	}
}

func TestTable_Holder(t *testing.T) {
	table := DefaultTable()

	if a, ok := table.Holder(MustParse("F12")); !ok || a != ActionTakeScreenshot {
		t.Errorf("Holder(F12) = %q, %v", a, ok)
	}
	if _, ok := table.Holder(Hotkey{}); ok {
		t.Error("zero hotkey should have no holder")
	}
}
