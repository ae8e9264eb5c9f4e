/*
Package hotkey holds the host application's keyboard hotkeys.

# Types

Hotkey is a key code plus ALT/CTRL/SHIFT flags. Raw packs it into a
uint32 so descriptors can be compared and used as map keys; raw 0 means
unbound.

Table is the ordered list of configurable bindings (action, label,
hotkey). It is what gets loaded from and saved to the hotkey file.

Registry is the runtime lookup: raw descriptor -> action -> handler. At
most one action holds a given descriptor. The application owns the
registry and passes it to the capture controller and to whatever
dispatches key presses; there is no package-level state.

# Key strings

	F11
	ALT + Enter
	CTRL + SHIFT + S
	ctrl+shift+s

Parse accepts both the label form and the compact form.
*/
package hotkey
