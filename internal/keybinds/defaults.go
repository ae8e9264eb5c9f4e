package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerSettingsBindings(r)
	registerHistoryBindings(r)
	registerHelpBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerSettingsBindings sets up keybindings for the hotkey list
func registerSettingsBindings(r *Registry) {
	r.Register(ContextSettings, "q", ActionQuit)

	r.RegisterMultiple(ContextSettings, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSettings, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextSettings, "pgup", ActionPageUp)
	r.Register(ContextSettings, "pgdown", ActionPageDown)
	r.Register(ContextSettings, "home", ActionGoToTop)
	r.Register(ContextSettings, "end", ActionGoToBottom)
	r.Register(ContextSettings, "g", ActionGoToTopPrepare)
	r.Register(ContextSettings, "gg", ActionGoToTop)
	r.Register(ContextSettings, "G", ActionGoToBottom)

	r.RegisterMultiple(ContextSettings, []string{"enter", " ", "space"}, ActionStartCapture)
	r.RegisterMultiple(ContextSettings, []string{"backspace", "delete", "x"}, ActionClearBinding)
	r.Register(ContextSettings, "d", ActionResetDefault)
	r.Register(ContextSettings, "ctrl+s", ActionSave)
	r.Register(ContextSettings, "ctrl+r", ActionReload)

	r.Register(ContextSettings, "H", ActionOpenHistory)
	r.Register(ContextSettings, "?", ActionOpenHelp)
}

// registerHistoryBindings sets up keybindings for the change history pane
func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"esc", "H", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "pgup", ActionPageUp)
	r.Register(ContextHistory, "pgdown", ActionPageDown)
	r.Register(ContextHistory, "g", ActionGoToTopPrepare)
	r.Register(ContextHistory, "gg", ActionGoToTop)
	r.Register(ContextHistory, "G", ActionGoToBottom)
}

// registerHelpBindings sets up keybindings for help viewer
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
}

// registerConfirmBindings sets up keybindings for confirmation dialogs
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
