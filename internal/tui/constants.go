package tui

import "time"

// UI Layout Constants

const (
	// Hotkey list
	ListTopLines     = 3  // Title, column header, separator
	ListBottomLines  = 2  // Footer and status line
	RowIndent        = 2  // Space before each label
	LabelColumnWidth = 28 // Label column, button starts right after

	// Modal Dimensions
	ModalWidthMargin  = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 3 // Standard vertical margin (m.height - 3)

	// Split Pane Layout
	SplitPaneBorderWidth = 3    // Border width between split panes
	SplitViewEqual       = 0.5  // Default 50/50 split
	HistoryListRatio     = 0.55 // History list share, details get the rest

	// Number of history entries loaded into the pane
	HistoryLimit = 200
)

const (
	// StatusTimeout is how long footer messages stay up
	StatusTimeout = 4 * time.Second

	// fileEventGrace ignores watcher events caused by our own save
	fileEventGrace = time.Second
)

// timeNow is replaced in tests
var timeNow = time.Now
