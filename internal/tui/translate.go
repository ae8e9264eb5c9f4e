package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

// Terminals report key presses, never releases, so every key message is
// treated as the key-up that ends a capture.

var specialKeys = map[tea.KeyType]hotkey.KeyEvent{
	tea.KeyTab:       {Code: hotkey.CodeTab},
	tea.KeyShiftTab:  {Code: hotkey.CodeTab, Shift: true},
	tea.KeyEnter:     {Code: hotkey.CodeEnter},
	tea.KeyEscape:    {Code: hotkey.CodeEscape},
	tea.KeyBackspace: {Code: hotkey.CodeBackspace},
	tea.KeyDelete:    {Code: hotkey.CodeDelete},
	tea.KeyInsert:    {Code: hotkey.CodeInsert},
	tea.KeySpace:     {Code: hotkey.CodeSpace},

	tea.KeyUp:             {Code: hotkey.CodeUp},
	tea.KeyDown:           {Code: hotkey.CodeDown},
	tea.KeyLeft:           {Code: hotkey.CodeLeft},
	tea.KeyRight:          {Code: hotkey.CodeRight},
	tea.KeyShiftUp:        {Code: hotkey.CodeUp, Shift: true},
	tea.KeyShiftDown:      {Code: hotkey.CodeDown, Shift: true},
	tea.KeyShiftLeft:      {Code: hotkey.CodeLeft, Shift: true},
	tea.KeyShiftRight:     {Code: hotkey.CodeRight, Shift: true},
	tea.KeyCtrlUp:         {Code: hotkey.CodeUp, Ctrl: true},
	tea.KeyCtrlDown:       {Code: hotkey.CodeDown, Ctrl: true},
	tea.KeyCtrlLeft:       {Code: hotkey.CodeLeft, Ctrl: true},
	tea.KeyCtrlRight:      {Code: hotkey.CodeRight, Ctrl: true},
	tea.KeyCtrlShiftUp:    {Code: hotkey.CodeUp, Ctrl: true, Shift: true},
	tea.KeyCtrlShiftDown:  {Code: hotkey.CodeDown, Ctrl: true, Shift: true},
	tea.KeyCtrlShiftLeft:  {Code: hotkey.CodeLeft, Ctrl: true, Shift: true},
	tea.KeyCtrlShiftRight: {Code: hotkey.CodeRight, Ctrl: true, Shift: true},

	tea.KeyHome:          {Code: hotkey.CodeHome},
	tea.KeyEnd:           {Code: hotkey.CodeEnd},
	tea.KeyShiftHome:     {Code: hotkey.CodeHome, Shift: true},
	tea.KeyShiftEnd:      {Code: hotkey.CodeEnd, Shift: true},
	tea.KeyCtrlHome:      {Code: hotkey.CodeHome, Ctrl: true},
	tea.KeyCtrlEnd:       {Code: hotkey.CodeEnd, Ctrl: true},
	tea.KeyCtrlShiftHome: {Code: hotkey.CodeHome, Ctrl: true, Shift: true},
	tea.KeyCtrlShiftEnd:  {Code: hotkey.CodeEnd, Ctrl: true, Shift: true},
	tea.KeyPgUp:          {Code: hotkey.CodePageUp},
	tea.KeyPgDown:        {Code: hotkey.CodePageDown},
	tea.KeyCtrlPgUp:      {Code: hotkey.CodePageUp, Ctrl: true},
	tea.KeyCtrlPgDown:    {Code: hotkey.CodePageDown, Ctrl: true},
}

var functionKeys = []tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5,
	tea.KeyF6, tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10,
	tea.KeyF11, tea.KeyF12, tea.KeyF13, tea.KeyF14, tea.KeyF15,
	tea.KeyF16, tea.KeyF17, tea.KeyF18, tea.KeyF19, tea.KeyF20,
}

// keyEvent converts a bubbletea key message to the event the capture
// controller and the dispatcher understand. ok is false for input that
// has no key code, like pasted text.
func keyEvent(msg tea.KeyMsg) (hotkey.KeyEvent, bool) {
	ev, ok := baseKeyEvent(msg)
	if !ok {
		return hotkey.KeyEvent{}, false
	}
	ev.Alt = ev.Alt || msg.Alt
	return ev, true
}

func baseKeyEvent(msg tea.KeyMsg) (hotkey.KeyEvent, bool) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 || msg.Paste {
			return hotkey.KeyEvent{}, false
		}
		r := msg.Runes[0]
		code := hotkey.CodeForRune(r)
		if code == hotkey.CodeNone {
			return hotkey.KeyEvent{}, false
		}
		return hotkey.KeyEvent{Code: code, Shift: unicode.IsUpper(r)}, true
	}

	if ev, ok := specialKeys[msg.Type]; ok {
		return ev, true
	}

	for i, k := range functionKeys {
		if msg.Type == k {
			return hotkey.KeyEvent{Code: hotkey.FunctionKey(i + 1)}, true
		}
	}

	// ctrl+a .. ctrl+z; tab, enter and backspace were matched above
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return hotkey.KeyEvent{
			Code: hotkey.Code('A' + int(msg.Type-tea.KeyCtrlA)),
			Ctrl: true,
		}, true
	}

	return hotkey.KeyEvent{}, false
}
