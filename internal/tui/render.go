package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/hotkeyctl/internal/capture"
	"github.com/studiowebux/hotkeyctl/internal/hotkey"
	"github.com/studiowebux/hotkeyctl/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleButton = lipgloss.NewStyle().
			Foreground(colorCyan)

	styleButtonActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorYellow)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the hotkey list with footer and status line
func (m Model) renderMain() string {
	var b strings.Builder

	title := styleTitle.Render("Hotkeys")
	title += " " + styleSubtle.Render(m.store.Path())
	if m.controller.Dirty() {
		title += " " + styleWarning.Render("[modified]")
	}
	if m.window.Fullscreen() {
		title += " " + styleSubtle.Render("[fullscreen]")
	}
	b.WriteString(title + "\n")

	header := strings.Repeat(" ", RowIndent) + padRight("Action", LabelColumnWidth) + "Hotkey"
	b.WriteString(styleSubtle.Render(header) + "\n")
	b.WriteString(styleSubtle.Render(strings.Repeat("─", max(0, min(m.width, RowIndent+LabelColumnWidth+24)))) + "\n")

	table := m.controller.Table()
	height := m.listHeight()
	for i := 0; i < height; i++ {
		idx := m.offset + i
		if idx < table.Len() {
			b.WriteString(m.renderRow(idx))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter() + "\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderRow renders one binding: label then its key button
func (m Model) renderRow(idx int) string {
	binding := m.controller.Table().At(idx)

	marker := strings.Repeat(" ", RowIndent)
	label := padRight(truncate(binding.Label, LabelColumnWidth-1), LabelColumnWidth)
	if idx == m.cursor {
		marker = "> "
		label = styleSelected.Render(label)
	}

	button := buttonText(m.controller, binding.Action)
	active, capturing := m.controller.Active()
	switch {
	case capturing && active == binding.Action:
		button = styleButtonActive.Render(button)
	case binding.Keyboard.IsZero():
		button = styleSubtle.Render(button)
	default:
		button = styleButton.Render(button)
	}

	return marker + label + button
}

// buttonText is the unstyled key button of action
func buttonText(c *capture.Controller, action hotkey.Action) string {
	text := c.Label(action)
	if text == "" {
		text = "unbound"
	}
	return "[ " + text + " ]"
}

// buttonAt returns the row whose key button is at screen cell x, y
func (m Model) buttonAt(x, y int) (int, bool) {
	line := y - ListTopLines
	if line < 0 || line >= m.listHeight() {
		return -1, false
	}
	idx := m.offset + line
	table := m.controller.Table()
	if idx >= table.Len() {
		return -1, false
	}

	start := RowIndent + LabelColumnWidth
	width := lipgloss.Width(buttonText(m.controller, table.At(idx).Action))
	return idx, x >= start && x < start+width
}

// renderFooter shows the keys of the current screen
func (m Model) renderFooter() string {
	if m.controller.Capturing() {
		return m.help.ShortHelpView([]key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
			key.NewBinding(key.WithKeys("right"), key.WithHelp("right click", "clear")),
		})
	}

	return m.help.ShortHelpView(m.footerBindings(keybinds.ContextSettings, []keybinds.Action{
		keybinds.ActionStartCapture,
		keybinds.ActionClearBinding,
		keybinds.ActionResetDefault,
		keybinds.ActionSave,
		keybinds.ActionOpenHistory,
		keybinds.ActionOpenHelp,
		keybinds.ActionQuit,
	}))
}

// footerBindings builds help entries from the configured screen keys
func (m Model) footerBindings(context keybinds.Context, actions []keybinds.Action) []key.Binding {
	var bindings []key.Binding
	for _, action := range actions {
		keys := m.keybinds.GetBinding(context, action)
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(displayKey(keys[0]), strings.ToLower(keybinds.GetActionInfo(action).Description)),
		))
	}
	return bindings
}

// renderStatusBar renders the last message
func (m Model) renderStatusBar() string {
	switch {
	case m.errorMsg != "":
		return styleError.Render(truncate(m.errorMsg, max(m.width, 20)))
	case m.statusMsg != "":
		return styleSuccess.Render(truncate(m.statusMsg, max(m.width, 20)))
	default:
		return styleSubtle.Render(fmt.Sprintf("%d hotkeys", m.controller.Table().Len()))
	}
}

// listHeight is the number of rows that fit on screen
func (m Model) listHeight() int {
	return max(1, m.height-ListTopLines-ListBottomLines)
}

// ensureVisible scrolls the list so the cursor is on screen
func (m *Model) ensureVisible() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	m.offset = max(0, m.offset)
}

// updateViewport resizes the panes after a window change
func (m *Model) updateViewport() {
	modalWidth := max(20, m.width-ModalWidthMargin)
	modalHeight := max(6, m.height-ModalHeightMargin)

	m.historyView.Width = int(float64(modalWidth-SplitPaneBorderWidth)*HistoryListRatio) - 2
	m.historyView.Height = modalHeight - 5
	m.helpView.Width = modalWidth - 4
	m.helpView.Height = modalHeight - 5
	m.help.Width = m.width

	m.ensureVisible()
	m.updateHistoryView()
	m.updateHelpView()
}

// renderHistory renders the change history pane
func (m Model) renderHistory() string {
	modalWidth := max(20, m.width-ModalWidthMargin)
	modalHeight := max(6, m.height-ModalHeightMargin)

	left := m.historyView.View()
	if len(m.historyEntries) == 0 {
		left = styleSubtle.Render("No changes recorded yet")
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:       modalWidth,
		ModalHeight:      modalHeight,
		IsSplitView:      m.width >= 80,
		LeftTitle:        fmt.Sprintf("Changes (%d)", len(m.historyEntries)),
		LeftContent:      left,
		LeftBorderColor:  colorGreen,
		LeftIsFocused:    true,
		RightTitle:       "Details",
		RightContent:     m.renderHistoryDetail(),
		RightBorderColor: colorGray,
		Footer: m.help.ShortHelpView(m.footerBindings(keybinds.ContextHistory, []keybinds.Action{
			keybinds.ActionNavigateDown,
			keybinds.ActionNavigateUp,
			keybinds.ActionCloseModal,
		})),
		LeftWidthRatio: HistoryListRatio,
	}, m.width, m.height)
}

// renderHistoryDetail describes the selected change
func (m Model) renderHistoryDetail() string {
	if m.historyIndex >= len(m.historyEntries) {
		return ""
	}
	e := m.historyEntries[m.historyIndex]

	rows := [][2]string{
		{"When", e.Timestamp.Format("2006-01-02 15:04:05")},
		{"Action", m.labelFor(hotkey.Action(e.Action))},
		{"From", orUnbound(e.OldKey)},
		{"To", orUnbound(e.NewKey)},
		{"Source", e.Source},
		{"Session", e.SessionID},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(styleSubtle.Render(padRight(r[0], 9)) + r[1] + "\n")
	}
	return b.String()
}

// updateHistoryView rebuilds the history list content
func (m *Model) updateHistoryView() {
	var lines []string
	for i, e := range m.historyEntries {
		line := fmt.Sprintf("%s  %s  %s → %s",
			e.Timestamp.Format("01-02 15:04"),
			truncate(m.labelFor(hotkey.Action(e.Action)), 24),
			orUnbound(e.OldKey),
			orUnbound(e.NewKey))
		if i == m.historyIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	m.historyView.SetContent(strings.Join(lines, "\n"))

	if m.historyIndex < m.historyView.YOffset {
		m.historyView.SetYOffset(m.historyIndex)
	} else if m.historyView.Height > 0 && m.historyIndex >= m.historyView.YOffset+m.historyView.Height {
		m.historyView.SetYOffset(m.historyIndex - m.historyView.Height + 1)
	}
}

// renderHelp renders the help viewer
func (m Model) renderHelp() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(max(20, m.width-ModalWidthMargin)).
		Render(styleTitle.Render("Help") + "\n\n" + m.helpView.View())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// updateHelpView rebuilds the help text from the active keybindings
func (m *Model) updateHelpView() {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Recording a hotkey") + "\n")
	b.WriteString("Select a row and press " + displayKeys(m.keybinds.GetBinding(keybinds.ContextSettings, keybinds.ActionStartCapture)) +
		" or click its button. The button shows " + capture.ActiveLabel + " while waiting.\n")
	b.WriteString("The next key, with any of alt, ctrl and shift held, becomes the hotkey.\n")
	b.WriteString("Esc and bare modifiers are not recorded. A key used by another action is refused.\n")
	b.WriteString("Right click a button to clear its hotkey, or to cancel while recording.\n\n")

	b.WriteString(styleTitle.Render("Trying hotkeys") + "\n")
	b.WriteString("Keys the list does not use run the action bound to them.\n\n")

	categories := []string{"Navigation", "Bindings", "Panes", "Global"}
	for _, category := range categories {
		b.WriteString(styleTitle.Render(category) + "\n")
		for _, binding := range m.settingsBindingsIn(category) {
			b.WriteString("  " + padRight(binding[0], 22) + binding[1] + "\n")
		}
		b.WriteString("\n")
	}

	m.helpView.SetContent(b.String())
}

// settingsBindingsIn lists key/description pairs for one help category
func (m *Model) settingsBindingsIn(category string) [][2]string {
	seen := make(map[keybinds.Action]bool)
	var out [][2]string
	for _, binding := range m.keybinds.ListBindings(keybinds.ContextSettings) {
		if binding.Action == keybinds.ActionGoToTopPrepare || binding.Action == keybinds.ActionNoOp {
			continue
		}
		info := keybinds.GetActionInfo(binding.Action)
		if info.Category != category || seen[binding.Action] {
			continue
		}
		seen[binding.Action] = true
		keys := m.keybinds.GetBinding(binding.Context, binding.Action)
		out = append(out, [2]string{displayKeys(keys), info.Description})
	}
	return out
}

// renderConfirmReload asks before discarding unsaved edits
func (m Model) renderConfirmReload() string {
	yes := displayKeys(m.keybinds.GetBinding(keybinds.ContextConfirm, keybinds.ActionConfirm))
	no := displayKeys(m.keybinds.GetBinding(keybinds.ContextConfirm, keybinds.ActionCancel))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Padding(1, 2).
		Render(styleWarning.Render("Discard unsaved changes and reload from disk?") +
			"\n\n" + styleSubtle.Render(yes+" reload • "+no+" keep editing"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func displayKeys(keys []string) string {
	shown := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		d := displayKey(k)
		if seen[d] {
			continue
		}
		seen[d] = true
		shown = append(shown, d)
	}
	return strings.Join(shown, "/")
}

func orUnbound(k string) string {
	if k == "" {
		return "unbound"
	}
	return k
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-3 {
		r = r[:width-3]
	}
	return string(r) + "..."
}
