package hotkey

import (
	"errors"
	"testing"
)

func TestHotkey_RawRoundTrip(t *testing.T) {
	tests := []Hotkey{
		{},
		{Key: CodeF1 + 10},
		{Key: CodeEnter, Alt: true},
		{Key: 'S', Ctrl: true, Shift: true},
		{Key: CodePageDown, Alt: true, Ctrl: true, Shift: true},
	}

	for _, h := range tests {
		if got := FromRaw(h.Raw()); got != h {
			t.Errorf("FromRaw(%#x) = %+v, want %+v", h.Raw(), got, h)
		}
	}
}

func TestHotkey_RawDistinguishesModifiers(t *testing.T) {
	plain := Hotkey{Key: 'A'}
	variants := []Hotkey{
		{Key: 'A', Alt: true},
		{Key: 'A', Ctrl: true},
		{Key: 'A', Shift: true},
	}
	for _, v := range variants {
		if v.Raw() == plain.Raw() {
			t.Errorf("%+v has same raw value as %+v", v, plain)
		}
	}
}

func TestHotkey_String(t *testing.T) {
	tests := []struct {
		name     string
		hotkey   Hotkey
		expected string
	}{
		{"unbound", Hotkey{}, ""},
		{"function key", Hotkey{Key: FunctionKey(11)}, "F11"},
		{"letter", Hotkey{Key: 'Q'}, "Q"},
		{"alt enter", Hotkey{Key: CodeEnter, Alt: true}, "ALT + Enter"},
		{"modifier order", Hotkey{Key: 'S', Alt: true, Ctrl: true, Shift: true}, "ALT + CTRL + SHIFT + S"},
		{"escape", Hotkey{Key: CodeEscape}, "Esc"},
		{"unnamed code", Hotkey{Key: 1000}, "#1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hotkey.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Hotkey
	}{
		{"", Hotkey{}},
		{"F11", Hotkey{Key: FunctionKey(11)}},
		{"f12", Hotkey{Key: FunctionKey(12)}},
		{"ALT + Enter", Hotkey{Key: CodeEnter, Alt: true}},
		{"ctrl+shift+s", Hotkey{Key: 'S', Ctrl: true, Shift: true}},
		{"Control + a", Hotkey{Key: 'A', Ctrl: true}},
		{"esc", Hotkey{Key: CodeEscape}},
		{"pgdown", Hotkey{Key: CodePageDown}},
		{"ctrl++", Hotkey{Key: '+', Ctrl: true}},
		{"CTRL + +", Hotkey{Key: '+', Ctrl: true}},
		{"+", Hotkey{Key: '+'}},
		{"#1000", Hotkey{Key: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{"hyper+a", "ctrl+nosuchkey", "F99", "ctrl+shift+€", "a+", "ctrl+", "CTRL + ", "+a", "ctrl++a", "ctrl+++"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidKey", in, err)
			}
		})
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	for _, b := range DefaultTable().All() {
		got, err := Parse(b.Keyboard.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", b.Keyboard.String(), err)
		}
		if got != b.Keyboard {
			t.Errorf("Parse(%q) = %+v, want %+v", b.Keyboard.String(), got, b.Keyboard)
		}
	}
}

func TestCode_IsCapturable(t *testing.T) {
	rejected := []Code{CodeNone, CodeEscape, CodeAlt, CodeControl, CodeShift}
	for _, c := range rejected {
		if c.IsCapturable() {
			t.Errorf("%v should not be capturable", c)
		}
	}

	accepted := []Code{'A', CodeEnter, CodeSpace, FunctionKey(1), CodeDelete, CodeTab}
	for _, c := range accepted {
		if !c.IsCapturable() {
			t.Errorf("%v should be capturable", c)
		}
	}
}

func TestCodeForRune(t *testing.T) {
	tests := []struct {
		r        rune
		expected Code
	}{
		{'a', 'A'},
		{'Z', 'Z'},
		{'1', '1'},
		{' ', CodeSpace},
		{'\n', CodeNone},
		{'é', CodeNone},
	}

	for _, tt := range tests {
		if got := CodeForRune(tt.r); got != tt.expected {
			t.Errorf("CodeForRune(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}
