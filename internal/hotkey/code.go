package hotkey

import (
	"strconv"
	"strings"
	"unicode"
)

// Code identifies a physical key. Printable ASCII keys use their character
// value (letters are always upper case); everything else lives above 255.
type Code uint16

const (
	CodeNone      Code = 0
	CodeBackspace Code = 8
	CodeTab       Code = 9
	CodeEnter     Code = 13
	CodeEscape    Code = 27
	CodeSpace     Code = 32
	CodeDelete    Code = 127

	CodeEnd      Code = 312
	CodeHome     Code = 313
	CodeLeft     Code = 314
	CodeUp       Code = 315
	CodeRight    Code = 316
	CodeDown     Code = 317
	CodeInsert   Code = 322
	CodePageUp   Code = 366
	CodePageDown Code = 367

	// Modifier keys on their own. They never form a hotkey.
	CodeShift   Code = 306
	CodeAlt     Code = 307
	CodeControl Code = 308

	CodeF1  Code = 340
	CodeF24 Code = CodeF1 + 23
)

var codeNames = map[Code]string{
	CodeBackspace: "Back",
	CodeTab:       "Tab",
	CodeEnter:     "Enter",
	CodeEscape:    "Esc",
	CodeSpace:     "Space",
	CodeDelete:    "Delete",
	CodeEnd:       "End",
	CodeHome:      "Home",
	CodeLeft:      "Left",
	CodeUp:        "Up",
	CodeRight:     "Right",
	CodeDown:      "Down",
	CodeInsert:    "Insert",
	CodePageUp:    "PageUp",
	CodePageDown:  "PageDown",
	CodeShift:     "Shift",
	CodeAlt:       "Alt",
	CodeControl:   "Ctrl",
}

// aliases accepted by ParseCode in addition to codeNames.
var codeAliases = map[string]Code{
	"backspace": CodeBackspace,
	"return":    CodeEnter,
	"escape":    CodeEscape,
	"del":       CodeDelete,
	"ins":       CodeInsert,
	"pgup":      CodePageUp,
	"pgdown":    CodePageDown,
	"pgdn":      CodePageDown,
	"control":   CodeControl,
}

// CodeForRune maps a printable character to its key code. Letters fold to
// upper case. It returns CodeNone for anything that is not printable ASCII.
func CodeForRune(r rune) Code {
	if r == ' ' {
		return CodeSpace
	}
	if r <= ' ' || r >= 127 {
		return CodeNone
	}
	return Code(unicode.ToUpper(r))
}

// FunctionKey returns the code for Fn, n in 1..24.
func FunctionKey(n int) Code {
	if n < 1 || n > 24 {
		return CodeNone
	}
	return CodeF1 + Code(n-1)
}

// IsModifier reports whether c is a bare modifier key.
func (c Code) IsModifier() bool {
	return c == CodeShift || c == CodeAlt || c == CodeControl
}

// IsCapturable reports whether a key-up with this code may become a hotkey.
// None, Escape and the bare modifiers are rejected.
func (c Code) IsCapturable() bool {
	switch c {
	case CodeNone, CodeEscape, CodeAlt, CodeControl, CodeShift:
		return false
	default:
		return true
	}
}

func (c Code) String() string {
	if c == CodeNone {
		return ""
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	if c >= CodeF1 && c <= CodeF24 {
		return "F" + strconv.Itoa(int(c-CodeF1)+1)
	}
	if c > ' ' && c < 127 {
		return string(rune(c))
	}
	return "#" + strconv.Itoa(int(c))
}

// ParseCode resolves a key name ("F11", "Enter", "a", "PgUp") to its code.
func ParseCode(name string) (Code, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CodeNone, false
	}
	runes := []rune(name)
	if len(runes) == 1 {
		c := CodeForRune(runes[0])
		return c, c != CodeNone
	}

	lower := strings.ToLower(name)
	if c, ok := codeAliases[lower]; ok {
		return c, true
	}
	for c, n := range codeNames {
		if strings.ToLower(n) == lower {
			return c, true
		}
	}
	if lower[0] == 'f' {
		if n, err := strconv.Atoi(lower[1:]); err == nil {
			if c := FunctionKey(n); c != CodeNone {
				return c, true
			}
		}
	}
	if lower[0] == '#' {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n > 0 && n <= 0xFFFF {
			return Code(n), true
		}
	}
	return CodeNone, false
}
