/*
Package tui implements the hotkey settings screen.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: the capture controller, the stores and the pane state
  - Update: routes keys, mouse events and watcher notifications
  - View: renders the hotkey list or the active pane

# Key Components

  - model.go: Core state, messages and the Update loop
  - init.go: Construction from Options and the Run entry point
  - keys.go: Keyboard and mouse routing into the capture protocol
  - translate.go: bubbletea key messages to hotkey key events
  - render.go: The hotkey list, history pane, help and confirmation

# Input Routing

While a control is capturing, every key message goes to the controller
as a key-up; only the force-quit key is handled first. Otherwise keys
bound in the settings context drive the list, and anything left over is
dispatched through the hotkey registry so bindings can be tried live.

Mouse: a left press on a key button activates it, a right release on a
button cancels the capture or clears the binding.

# Persistence

Edits stay in memory until saved. Closing the screen saves pending
changes. External edits to the file are reloaded when nothing is
pending.
*/
package tui
