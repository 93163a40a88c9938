package tty

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the dialog. Raw mode turns Ctrl+C into a
// key press instead of SIGINT, so it is bound to interrupt the dialog.
type keyMap struct {
	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "interrupt"),
		),
	}
}
