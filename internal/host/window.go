// Package host implements the actions hotkeys trigger against the terminal
// window running the settings screen.
package host

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
)

// screenshotLayout names screenshot files; sortable and free of colons.
const screenshotLayout = "20060102-150405.000"

// Window holds the fullscreen state of the terminal and knows how to save
// what is currently on screen. Hotkey handlers cannot return commands, so
// the terminal changes they need are queued and drained by the program
// after each dispatch.
type Window struct {
	fullscreen bool
	frame      func() string
	dir        string
	copy       func(string) error
	now        func() time.Time
	logger     *slog.Logger

	pending  []tea.Cmd
	lastShot string
	lastErr  error
}

// Option configures a Window.
type Option func(*Window)

// WithClipboard replaces the clipboard writer. Passing nil disables copying.
func WithClipboard(fn func(string) error) Option {
	return func(w *Window) { w.copy = fn }
}

// WithClock replaces time.Now for screenshot names.
func WithClock(now func() time.Time) Option {
	return func(w *Window) { w.now = now }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(w *Window) { w.logger = l }
}

// WithFullscreen sets the initial fullscreen state.
func WithFullscreen(on bool) Option {
	return func(w *Window) { w.fullscreen = on }
}

// NewWindow creates a window whose screenshots are written to dir.
// frame returns the text currently rendered.
func NewWindow(dir string, frame func() string, opts ...Option) *Window {
	w := &Window{
		frame:  frame,
		dir:    dir,
		copy:   clipboard.WriteAll,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Install registers the window's handlers for every hotkey action.
// Both fullscreen toggles share one handler.
func (w *Window) Install(r *hotkey.Registry) {
	r.Handle(hotkey.ActionToggleFullscreen, w.ToggleFullscreen)
	r.Handle(hotkey.ActionToggleFullscreenAlt, w.ToggleFullscreen)
	r.Handle(hotkey.ActionExitFullscreen, w.ExitFullscreen)
	r.Handle(hotkey.ActionTakeScreenshot, w.TakeScreenshot)
}

// Fullscreen reports whether the window is fullscreen.
func (w *Window) Fullscreen() bool {
	return w.fullscreen
}

// ToggleFullscreen flips between fullscreen and windowed.
func (w *Window) ToggleFullscreen() {
	w.setFullscreen(!w.fullscreen)
}

// ExitFullscreen leaves fullscreen. It does nothing when windowed.
func (w *Window) ExitFullscreen() {
	if w.fullscreen {
		w.setFullscreen(false)
	}
}

func (w *Window) setFullscreen(on bool) {
	w.fullscreen = on
	if on {
		w.pending = append(w.pending, tea.EnterAltScreen)
	} else {
		w.pending = append(w.pending, tea.ExitAltScreen)
	}
	w.logger.Debug("fullscreen changed", "fullscreen", on)
}

// TakeScreenshot writes the current frame to a timestamped file and copies
// it to the clipboard. A clipboard failure is logged but keeps the file.
func (w *Window) TakeScreenshot() {
	path, err := w.Screenshot()
	w.lastShot, w.lastErr = path, err
	if err != nil {
		w.logger.Error("screenshot failed", "error", err)
		return
	}
	w.logger.Info("screenshot saved", "path", path)
}

// Screenshot saves the frame and returns the file path.
func (w *Window) Screenshot() (string, error) {
	if w.frame == nil {
		return "", fmt.Errorf("no frame to capture")
	}
	content := w.frame()

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	path := filepath.Join(w.dir, w.now().Format(screenshotLayout)+".txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	if w.copy != nil {
		if err := w.copy(content); err != nil {
			w.logger.Warn("screenshot not copied to clipboard", "error", err)
		}
	}
	return path, nil
}

// LastScreenshot returns the result of the most recent TakeScreenshot.
func (w *Window) LastScreenshot() (string, error) {
	return w.lastShot, w.lastErr
}

// Drain returns the queued terminal commands and empties the queue.
func (w *Window) Drain() tea.Cmd {
	if len(w.pending) == 0 {
		return nil
	}
	cmds := w.pending
	w.pending = nil
	return tea.Sequence(cmds...)
}
