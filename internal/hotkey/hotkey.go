package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned by Parse for strings that do not describe a key.
var ErrInvalidKey = errors.New("invalid key")

const (
	rawKeyMask  uint32 = 0xFFFF
	rawAltBit   uint32 = 1 << 16
	rawCtrlBit  uint32 = 1 << 17
	rawShiftBit uint32 = 1 << 18
)

// Hotkey is a keyboard key descriptor: a key code plus modifier flags.
// The zero value means "unbound".
type Hotkey struct {
	Key   Code
	Alt   bool
	Ctrl  bool
	Shift bool
}

// Raw packs the descriptor into a single comparable value. Two hotkeys
// are the same binding exactly when their raw values are equal; an
// unbound hotkey has raw value 0.
func (h Hotkey) Raw() uint32 {
	raw := uint32(h.Key) & rawKeyMask
	if h.Alt {
		raw |= rawAltBit
	}
	if h.Ctrl {
		raw |= rawCtrlBit
	}
	if h.Shift {
		raw |= rawShiftBit
	}
	return raw
}

// FromRaw is the inverse of Raw.
func FromRaw(raw uint32) Hotkey {
	return Hotkey{
		Key:   Code(raw & rawKeyMask),
		Alt:   raw&rawAltBit != 0,
		Ctrl:  raw&rawCtrlBit != 0,
		Shift: raw&rawShiftBit != 0,
	}
}

// IsZero reports whether the hotkey is unbound.
func (h Hotkey) IsZero() bool {
	return h.Raw() == 0
}

// String renders the hotkey the way the settings screen labels it,
// e.g. "ALT + CTRL + F11". Unbound hotkeys render as "".
func (h Hotkey) String() string {
	if h.IsZero() {
		return ""
	}
	var sb strings.Builder
	if h.Alt {
		sb.WriteString("ALT + ")
	}
	if h.Ctrl {
		sb.WriteString("CTRL + ")
	}
	if h.Shift {
		sb.WriteString("SHIFT + ")
	}
	sb.WriteString(h.Key.String())
	return sb.String()
}

// Parse reads a key string. It accepts the label format produced by
// String ("CTRL + SHIFT + S") as well as the compact form used in
// keybinding files ("ctrl+shift+s"). The empty string parses to the
// zero (unbound) hotkey.
func Parse(s string) (Hotkey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Hotkey{}, nil
	}

	parts, err := splitKeyString(s)
	if err != nil {
		return Hotkey{}, err
	}
	var h Hotkey
	for i, part := range parts {
		last := i == len(parts)-1
		switch strings.ToLower(part) {
		case "alt", "option", "opt":
			if !last {
				h.Alt = true
				continue
			}
		case "ctrl", "control":
			if !last {
				h.Ctrl = true
				continue
			}
		case "shift":
			if !last {
				h.Shift = true
				continue
			}
		}
		if !last {
			return Hotkey{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKey, part, s)
		}
		code, ok := ParseCode(part)
		if !ok {
			return Hotkey{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKey, part, s)
		}
		h.Key = code
	}
	return h, nil
}

// MustParse is Parse for package-level defaults and tests.
func MustParse(s string) Hotkey {
	h, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return h
}

// splitKeyString splits on '+'. A '+' key is written as the last part
// ("ctrl++" or "CTRL + +"); any other empty part is an error.
func splitKeyString(s string) ([]string, error) {
	if s == "+" {
		return []string{"+"}, nil
	}
	raw := strings.Split(s, "+")
	if n := len(raw); n >= 3 && strings.TrimSpace(raw[n-1]) == "" && strings.TrimSpace(raw[n-2]) == "" {
		raw = append(raw[:n-2], "+")
	}
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: dangling '+' in %q", ErrInvalidKey, s)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// KeyEvent is a key release as delivered by the UI layer.
type KeyEvent struct {
	Code  Code
	Alt   bool
	Ctrl  bool
	Shift bool
}

// Hotkey builds the descriptor this event would bind.
func (e KeyEvent) Hotkey() Hotkey {
	return Hotkey{Key: e.Code, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
}

// Capturable reports whether the event can become a binding.
func (e KeyEvent) Capturable() bool {
	return e.Code.IsCapturable()
}
