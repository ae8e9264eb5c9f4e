package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// SplitPaneConfig defines the configuration for a split-pane modal
type SplitPaneConfig struct {
	ModalWidth  int
	ModalHeight int

	// If false, shows only the left pane at full width
	IsSplitView bool

	LeftTitle       string
	LeftContent     string
	LeftBorderColor lipgloss.AdaptiveColor
	LeftIsFocused   bool

	RightTitle       string
	RightContent     string
	RightBorderColor lipgloss.AdaptiveColor
	RightIsFocused   bool

	Footer string

	// Share of the width given to the left pane, 0.5 when unset
	LeftWidthRatio float64
}

// renderSplitPaneModal renders a list/detail modal centered on screen
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := cfg.ModalHeight - 4 // borders and padding

	pane := func(title, content string, border lipgloss.AdaptiveColor, focused bool, width int) string {
		titleStyle := styleTitleUnfocused
		if focused {
			titleStyle = styleTitleFocused
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(width).
			Height(paneHeight).
			Padding(0, 1).
			Render(titleStyle.Render(title) + "\n" + content)
	}

	var mainView string
	if cfg.IsSplitView {
		ratio := cfg.LeftWidthRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = SplitViewEqual
		}
		leftWidth := int(float64(cfg.ModalWidth-SplitPaneBorderWidth) * ratio)
		rightWidth := cfg.ModalWidth - leftWidth - SplitPaneBorderWidth

		mainView = lipgloss.JoinHorizontal(
			lipgloss.Top,
			pane(cfg.LeftTitle, cfg.LeftContent, cfg.LeftBorderColor, cfg.LeftIsFocused, leftWidth),
			pane(cfg.RightTitle, cfg.RightContent, cfg.RightBorderColor, cfg.RightIsFocused, rightWidth),
		)
	} else {
		mainView = pane(cfg.LeftTitle, cfg.LeftContent, cfg.LeftBorderColor, cfg.LeftIsFocused, cfg.ModalWidth)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		"\n"+styleSubtle.Render(cfg.Footer),
	)

	return lipgloss.Place(totalWidth, totalHeight, lipgloss.Center, lipgloss.Center, content)
}
