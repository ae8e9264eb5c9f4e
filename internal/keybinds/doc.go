/*
Package keybinds provides the customizable keys of the settings screen.

# Overview

The settings screen itself needs keys: moving between rows, starting a
capture, saving. These are kept apart from the hotkeys being edited.
Screen keys are plain strings in bubbletea notation ("ctrl+s", "up", "G")
mapped to actions per context.

# Contexts

  - Global: available everywhere (ctrl+c force quit)
  - Settings: the hotkey list
  - History: the change history pane
  - Help: the help viewer
  - Confirm: yes/no prompts

A key bound in a specific context overrides the global binding.

# Configuration File Format

Overrides live in keybinds.json. Each section maps an action to a
comma-separated key list; listing an action replaces its default keys
in that section:

	{
	  "version": "1.0",
	  "settings": {
	    "start_capture": "enter, r",
	    "save": "ctrl+s, ctrl+w"
	  }
	}

Comments are allowed.

# Interaction With Hotkeys

A key the screen consumes never reaches the hotkey dispatcher. The
Registry reports those keys as hotkey descriptors (ReservedHotkeys) so
the hotkey validator can warn when a binding is shadowed. Esc is left
unbound on the settings list for that reason.

# Multi-Key Sequences

"gg" goes to the top. The first g is bound to ActionGoToTopPrepare and
MatchMultiKey holds it until the next key arrives.

# Validation

The validator reports required actions left without a key, a rebound
ctrl+c and context bindings that shadow a global one.
*/
package keybinds
