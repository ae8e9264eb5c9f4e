package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/config"
	"github.com/studiowebux/hotkeyctl/internal/history"
	"github.com/studiowebux/hotkeyctl/internal/host"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
	"github.com/studiowebux/hotkeyctl/internal/store"
)

// Options wires the settings screen to its collaborators
type Options struct {
	Store    *store.Manager
	History  *history.Manager // nil disables the change history pane
	Keybinds *keybinds.Registry
	Logger   *slog.Logger

	ScreenshotsDir string
	Clipboard      func(string) error // nil keeps the system clipboard
	Fullscreen     bool               // start on the alternate screen
}

// New creates a new TUI model
func New(opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("no hotkey store")
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	table, err := opts.Store.Load()
	if err != nil {
		return nil, err
	}

	registry := hotkey.NewRegistry()
	registry.Load(table)

	captureOpts := []capture.Option{
		capture.WithLogger(opts.Logger),
		capture.WithSource("tui"),
	}
	if opts.History != nil {
		captureOpts = append(captureOpts, capture.WithRecorder(opts.History))
	}

	m := &Model{
		controller:   capture.New(table, registry, captureOpts...),
		store:        opts.Store,
		history:      opts.History,
		keybinds:     opts.Keybinds,
		validator:    store.NewValidator(opts.Keybinds.ReservedHotkeys(keybinds.ContextSettings)),
		logger:       opts.Logger,
		mode:         ModeSettings,
		rightPressed: -1,
		historyView:  viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
		help:         help.New(),
	}

	windowOpts := []host.Option{host.WithLogger(opts.Logger), host.WithFullscreen(opts.Fullscreen)}
	if opts.Clipboard != nil {
		windowOpts = append(windowOpts, host.WithClipboard(opts.Clipboard))
	}
	m.window = host.NewWindow(opts.ScreenshotsDir, func() string { return m.View() }, windowOpts...)
	m.window.Install(registry)

	if result := m.validator.ValidateTable(table); result.HasErrors() || result.HasWarnings() {
		m.statusMsg = fmt.Sprintf("%d problem(s) in hotkeys, run 'hotkeyctl validate'",
			len(result.Errors)+len(result.Warnings))
	}

	return m, nil
}

// Run starts the TUI
func Run() error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	logPath := config.Current.LogFile
	if logPath == "" {
		logPath = filepath.Join(config.ConfigDir, "hotkeyctl.log")
	}
	logFile, err := tea.LogToFile(logPath, "hotkeyctl")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: config.Current.Level()}))
	slog.SetDefault(logger)

	kb, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}
	if result := keybinds.NewValidator().ValidateRegistry(kb); result.HasErrors() || result.HasWarnings() {
		logger.Warn("keybinds.json has problems", "details", result.String())
	}

	var hist *history.Manager
	if !config.Current.NoHistory {
		hist, err = history.NewManager(config.DatabasePath)
		if err != nil {
			logger.Warn("change history disabled", "error", err)
			hist = nil
		}
	}

	m, err := New(Options{
		Store:          store.NewManager(config.GetHotkeysFilePath()),
		History:        hist,
		Keybinds:       kb,
		Logger:         logger,
		ScreenshotsDir: config.ScreenshotsDir,
		Fullscreen:     config.Current.Fullscreen,
	})
	if err != nil {
		if hist != nil {
			hist.Close()
		}
		return err
	}
	defer m.Cleanup()

	logger.Info("settings screen started", "file", m.store.Path())

	// Pass pointer since Update uses pointer receiver
	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if m.window.Fullscreen() {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

// startWatching follows external edits to the hotkey file
func (m *Model) startWatching() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.watchCancel = cancel
	m.fileEvents = make(chan struct{}, 1)

	events := m.fileEvents
	go func() {
		err := m.store.Watch(ctx, func() {
			select {
			case events <- struct{}{}:
			default:
			}
		})
		if err != nil {
			m.logger.Warn("not watching hotkey file", "error", err)
		}
	}()

	return m.waitForFileChange()
}

// waitForFileChange blocks until the watcher reports a change
func (m *Model) waitForFileChange() tea.Cmd {
	events := m.fileEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
