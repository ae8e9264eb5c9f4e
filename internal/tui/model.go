package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/history"
	"github.com/studiowebux/hotkeyctl/internal/host"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
	"github.com/studiowebux/hotkeyctl/internal/store"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeSettings Mode = iota
	ModeHistory
	ModeHelp
	ModeConfirmReload
)

// Model represents the TUI state
type Model struct {
	// Core state
	controller *capture.Controller
	store      *store.Manager
	history    *history.Manager
	keybinds   *keybinds.Registry
	window     *host.Window
	validator  *store.Validator
	logger     *slog.Logger
	mode       Mode

	// Hotkey list
	cursor int
	offset int

	// right button pressed over this row; -1 when none
	rightPressed int

	// History pane
	historyEntries []history.Entry
	historyIndex   int
	historyView    viewport.Model

	// Help pane
	helpView viewport.Model
	help     help.Model

	// File watching
	watchCancel context.CancelFunc
	fileEvents  chan struct{}
	ignoreUntil time.Time

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	quitting  bool
}

// Init starts watching the hotkey file
func (m *Model) Init() tea.Cmd {
	return m.startWatching()
}

// Cleanup stops the watcher and closes the history database
func (m *Model) Cleanup() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	if m.history != nil {
		if err := m.history.Close(); err != nil {
			m.logger.Error("error closing history database", "error", err)
		}
		m.history = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case historyLoadedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Failed to load history: %v", msg.err))
			break
		}
		m.historyEntries = msg.entries
		m.historyIndex = 0
		m.updateHistoryView()

	case fileChangedMsg:
		cmd = tea.Batch(m.handleFileChanged(), m.waitForFileChange())

	case clearStatusMsg:
		m.statusMsg = ""

	case errorMsg:
		m.setError(string(msg))
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHistory:
		return m.renderHistory()
	case ModeHelp:
		return m.renderHelp()
	case ModeConfirmReload:
		return m.renderConfirmReload()
	default:
		return m.renderMain()
	}
}

// Custom message types
type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

type fileChangedMsg struct{}

type clearStatusMsg struct{}

type errorMsg string

// selected returns the binding under the cursor
func (m *Model) selected() *hotkey.Binding {
	return m.controller.Table().At(m.cursor)
}

// setStatus shows msg in the footer and clears it after a while
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.errorMsg = ""
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setError(msg string) {
	m.errorMsg = msg
	m.logger.Warn(msg)
}
