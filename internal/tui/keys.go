package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Force quit works everywhere, even while capturing
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return m.quit()
	}

	// A control waiting for a key gets every key
	if m.controller.Capturing() {
		return m.handleCaptureKey(msg)
	}

	switch m.mode {
	case ModeSettings:
		return m.handleSettingsKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeConfirmReload:
		return m.handleConfirmReloadKeys(msg)
	}

	return nil
}

// handleCaptureKey feeds a key to the active control
func (m *Model) handleCaptureKey(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.controller.Active()
	ev, _ := keyEvent(msg)
	h := ev.Hotkey()
	holder, _ := m.controller.Table().Holder(h)

	outcome := m.controller.KeyUp(ev)
	return m.reportOutcome(action, outcome, h, holder)
}

// handleSettingsKeys handles keyboard input on the hotkey list
func (m *Model) handleSettingsKeys(msg tea.KeyMsg) tea.Cmd {
	action, complete, partial := m.keybinds.MatchMultiKey(keybinds.ContextSettings, msg.String())
	if partial {
		return nil
	}
	if !complete {
		return m.dispatchHotkey(msg)
	}

	rows := m.controller.Table().Len()
	switch action {
	case keybinds.ActionQuit:
		return m.quit()

	case keybinds.ActionNavigateUp:
		m.moveCursor(-1)
	case keybinds.ActionNavigateDown:
		m.moveCursor(1)
	case keybinds.ActionPageUp:
		m.moveCursor(-m.listHeight())
	case keybinds.ActionPageDown:
		m.moveCursor(m.listHeight())
	case keybinds.ActionGoToTop:
		m.moveCursor(-rows)
	case keybinds.ActionGoToBottom:
		m.moveCursor(rows)

	case keybinds.ActionStartCapture:
		return m.activate(m.cursor)
	case keybinds.ActionClearBinding:
		return m.secondaryClick(m.cursor)
	case keybinds.ActionResetDefault:
		return m.resetSelected()
	case keybinds.ActionSave:
		return m.save()
	case keybinds.ActionReload:
		if m.controller.Dirty() {
			m.mode = ModeConfirmReload
			return nil
		}
		return m.reload()

	case keybinds.ActionOpenHistory:
		if m.history == nil {
			return m.setStatus("Change history is disabled")
		}
		m.mode = ModeHistory
		return m.loadHistory()
	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
	}

	return nil
}

// dispatchHotkey runs the hotkey bound to a key the screen does not use
func (m *Model) dispatchHotkey(msg tea.KeyMsg) tea.Cmd {
	ev, ok := keyEvent(msg)
	if !ok {
		return nil
	}
	h := ev.Hotkey()
	action, bound := m.controller.Registry().Lookup(h)
	if !bound || !m.controller.Registry().Dispatch(h) {
		return nil
	}

	m.logger.Debug("hotkey dispatched", "key", h.String(), "action", action)
	status := m.setStatus(fmt.Sprintf("%s: %s", h, m.labelFor(action)))
	if action == hotkey.ActionTakeScreenshot {
		if path, err := m.window.LastScreenshot(); err != nil {
			m.setError(fmt.Sprintf("Screenshot failed: %v", err))
		} else {
			status = m.setStatus("Screenshot saved to " + path)
		}
	}
	return tea.Batch(m.window.Drain(), status)
}

// handleHistoryKeys handles keyboard input in the change history pane
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	action, complete, partial := m.keybinds.MatchMultiKey(keybinds.ContextHistory, msg.String())
	if partial || !complete {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeSettings
	case keybinds.ActionNavigateUp:
		m.moveHistory(-1)
	case keybinds.ActionNavigateDown:
		m.moveHistory(1)
	case keybinds.ActionPageUp:
		m.moveHistory(-m.historyView.Height)
	case keybinds.ActionPageDown:
		m.moveHistory(m.historyView.Height)
	case keybinds.ActionGoToTop:
		m.moveHistory(-len(m.historyEntries))
	case keybinds.ActionGoToBottom:
		m.moveHistory(len(m.historyEntries))
	}

	return nil
}

// handleHelpKeys handles keyboard input in the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String()); ok && action == keybinds.ActionCloseModal {
		m.mode = ModeSettings
		return nil
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}

// handleConfirmReloadKeys asks before dropping unsaved changes
func (m *Model) handleConfirmReloadKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		m.mode = ModeSettings
		return m.reload()
	case keybinds.ActionCancel:
		m.mode = ModeSettings
		return m.setStatus("Reload cancelled")
	}
	return nil
}

// handleMouse maps clicks on a row's key button to the capture protocol.
// Left press activates; right release is the secondary click.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode != ModeSettings {
		return nil
	}

	row, onButton := m.buttonAt(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if onButton {
			return m.activate(row)
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		m.rightPressed = -1
		if onButton {
			m.rightPressed = row
		}

	case msg.Action == tea.MouseActionRelease:
		// Some terminals do not say which button was released
		pressed := m.rightPressed
		m.rightPressed = -1
		if msg.Button != tea.MouseButtonRight && pressed < 0 {
			return nil
		}
		if onButton {
			return m.secondaryClick(row)
		}
	}

	return nil
}

// activate starts capturing on row
func (m *Model) activate(row int) tea.Cmd {
	b := m.controller.Table().At(row)
	if b == nil {
		return nil
	}
	m.cursor = row
	m.ensureVisible()

	outcome, err := m.controller.Activate(b.Action)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return m.reportOutcome(b.Action, outcome, hotkey.Hotkey{}, "")
}

// secondaryClick cancels a capture or clears row's binding
func (m *Model) secondaryClick(row int) tea.Cmd {
	b := m.controller.Table().At(row)
	if b == nil {
		return nil
	}
	m.cursor = row
	m.ensureVisible()

	outcome, err := m.controller.SecondaryClick(b.Action)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return m.reportOutcome(b.Action, outcome, hotkey.Hotkey{}, "")
}

// resetSelected restores the stock hotkey of the selected row
func (m *Model) resetSelected() tea.Cmd {
	b := m.selected()
	if b == nil {
		return nil
	}
	def, ok := hotkey.DefaultTable().Get(b.Action)
	if !ok {
		return nil
	}
	holder, _ := m.controller.Table().Holder(def.Keyboard)

	outcome, err := m.controller.Assign(b.Action, def.Keyboard)
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	return m.reportOutcome(b.Action, outcome, def.Keyboard, holder)
}

// reportOutcome turns a capture outcome into a footer message
func (m *Model) reportOutcome(action hotkey.Action, outcome capture.Outcome, h hotkey.Hotkey, holder hotkey.Action) tea.Cmd {
	label := m.labelFor(action)

	switch outcome {
	case capture.OutcomeStarted, capture.OutcomeAlreadyActive:
		return m.setStatus(fmt.Sprintf("Press a key for %s (Esc cancels, right click clears)", label))
	case capture.OutcomeRejected:
		return m.setStatus("No hotkey recorded")
	case capture.OutcomeUnchanged:
		return m.setStatus(fmt.Sprintf("%s unchanged", label))
	case capture.OutcomeConflict:
		m.setError(fmt.Sprintf("%s is already used by %s", h, m.labelFor(holder)))
		return nil
	case capture.OutcomeCommitted:
		return m.setStatus(m.withWarnings(fmt.Sprintf("%s set to %s", label, h), action))
	case capture.OutcomeCancelled:
		return m.setStatus("Capture cancelled")
	case capture.OutcomeCleared:
		return m.setStatus(fmt.Sprintf("%s cleared", label))
	}
	return nil
}

// withWarnings appends validator warnings about action to msg
func (m *Model) withWarnings(msg string, action hotkey.Action) string {
	result := m.validator.ValidateTable(m.controller.Table())
	for _, w := range result.Warnings {
		if w.Action == string(action) {
			return msg + " (" + w.Message + ")"
		}
	}
	return msg
}

// labelFor returns the row label of action
func (m *Model) labelFor(action hotkey.Action) string {
	if b, ok := m.controller.Table().Get(action); ok {
		return b.Label
	}
	return string(action)
}

// save writes pending changes to disk
func (m *Model) save() tea.Cmd {
	if err := m.store.Save(m.controller.Table()); err != nil {
		m.setError(fmt.Sprintf("Failed to save hotkeys: %v", err))
		return nil
	}
	m.controller.MarkSaved()
	m.ignoreUntil = timeNow().Add(fileEventGrace)
	m.logger.Info("hotkeys saved", "path", m.store.Path())
	return m.setStatus("Saved to " + m.store.Path())
}

// reload replaces the table with what is on disk
func (m *Model) reload() tea.Cmd {
	table, err := m.store.Load()
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.controller.Reset(table)
	m.logger.Info("hotkeys reloaded", "path", m.store.Path())
	return m.setStatus("Reloaded from " + m.store.Path())
}

// handleFileChanged reacts to an external edit of the hotkey file
func (m *Model) handleFileChanged() tea.Cmd {
	if timeNow().Before(m.ignoreUntil) {
		return nil
	}
	if m.controller.Dirty() || m.controller.Capturing() {
		return m.setStatus("Hotkey file changed on disk, reload to pick it up")
	}
	return m.reload()
}

// quit saves pending changes and exits
func (m *Model) quit() tea.Cmd {
	m.controller.Cancel()
	if m.controller.Dirty() {
		if err := m.store.Save(m.controller.Table()); err != nil {
			m.logger.Error("failed to save hotkeys on close", "error", err)
		} else {
			m.controller.MarkSaved()
			m.logger.Info("hotkeys saved on close", "path", m.store.Path())
		}
	}
	m.Cleanup()
	m.quitting = true
	return tea.Quit
}

// loadHistory reads recent binding changes
func (m *Model) loadHistory() tea.Cmd {
	hist := m.history
	return func() tea.Msg {
		entries, err := hist.Recent(HistoryLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) moveCursor(delta int) {
	rows := m.controller.Table().Len()
	if rows == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), rows-1)
	m.ensureVisible()
}

func (m *Model) moveHistory(delta int) {
	if len(m.historyEntries) == 0 {
		return
	}
	m.historyIndex = min(max(m.historyIndex+delta, 0), len(m.historyEntries)-1)
	m.updateHistoryView()
}
