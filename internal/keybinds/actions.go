package keybinds

// Action represents a settings screen command that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal   Context = "global"   // Available everywhere
	ContextSettings Context = "settings" // Hotkey list
	ContextHistory  Context = "history"  // Change history pane
	ContextHelp     Context = "help"     // Help viewer
	ContextConfirm  Context = "confirm"  // Confirmation dialogs
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Close the settings screen
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one row
	ActionNavigateDown   Action = "navigate_down"     // Move down one row
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence

	// Binding actions
	ActionStartCapture Action = "start_capture" // Listen for a new hotkey on the selected row
	ActionClearBinding Action = "clear_binding" // Remove the selected row's hotkey
	ActionSave         Action = "save"          // Write pending changes
	ActionReload       Action = "reload"        // Discard pending changes and reload from disk
	ActionResetDefault Action = "reset_default" // Restore the selected row's stock hotkey

	// Panes
	ActionOpenHistory Action = "open_history" // Open change history
	ActionOpenHelp    Action = "open_help"    // Open help viewer
	ActionCloseModal  Action = "close_modal"  // Close current pane

	// Confirmation
	ActionConfirm Action = "confirm" // Confirm action (y/Y)
	ActionCancel  Action = "cancel"  // Cancel action (n/N)

	ActionNoOp Action = "noop" // No operation (ignore key)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:         {ActionQuit, "Close", "Global"},
	ActionQuitForce:    {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:   {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown: {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:       {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:     {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:      {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:   {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionStartCapture: {ActionStartCapture, "Record hotkey", "Bindings"},
	ActionClearBinding: {ActionClearBinding, "Clear hotkey", "Bindings"},
	ActionSave:         {ActionSave, "Save", "Bindings"},
	ActionReload:       {ActionReload, "Reload from disk", "Bindings"},
	ActionResetDefault: {ActionResetDefault, "Restore default", "Bindings"},
	ActionOpenHistory:  {ActionOpenHistory, "Change history", "Panes"},
	ActionOpenHelp:     {ActionOpenHelp, "Help", "Panes"},
	ActionCloseModal:   {ActionCloseModal, "Close pane", "Panes"},
	ActionConfirm:      {ActionConfirm, "Confirm", "Confirm"},
	ActionCancel:       {ActionCancel, "Cancel", "Confirm"},

	ActionGoToTopPrepare: {ActionGoToTopPrepare, "Go to top (first key)", "Navigation"},
	ActionNoOp:           {ActionNoOp, "Ignore key", "Global"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}
