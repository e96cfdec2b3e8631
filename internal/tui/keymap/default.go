package keymap

import tea "github.com/charmbracelet/bubbletea"

func key(t tea.KeyType, cmd Command, desc string) KeyBinding {
	return KeyBinding{KeyType: t, Command: cmd, Description: desc}
}

func char(r rune, cmd Command, desc string) KeyBinding {
	return KeyBinding{KeyType: tea.KeyRunes, Rune: r, Command: cmd, Description: desc}
}

func (kb KeyBinding) alt() KeyBinding {
	kb.Modifiers |= ModAlt
	return kb
}

func (kb KeyBinding) short() KeyBinding {
	kb.Short = true
	return kb
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		ModeList: {
			char('k', CmdCursorUp, "Previous task"),
			key(tea.KeyUp, CmdCursorUp, "Previous task"),
			char('j', CmdCursorDown, "Next task"),
			key(tea.KeyDown, CmdCursorDown, "Next task"),

			key(tea.KeySpace, CmdToggle, "Toggle done").short(),
			char('x', CmdToggle, "Toggle done"),
			char('d', CmdDelete, "Delete task").short(),
			key(tea.KeyDelete, CmdDelete, "Delete task"),
			char('K', CmdMoveUp, "Move task up").short(),
			key(tea.KeyUp, CmdMoveUp, "Move task up").alt(),
			char('J', CmdMoveDown, "Move task down").short(),
			key(tea.KeyDown, CmdMoveDown, "Move task down").alt(),

			char('D', CmdDeleteAll, "Delete all"),
			char('X', CmdDeleteSelected, "Delete selected"),

			char('a', CmdFocusInput, "New task").short(),
			key(tea.KeyTab, CmdFocusInput, "New task"),
			char('u', CmdOpenSelector, "Select user").short(),

			char('?', CmdToggleHelp, "Toggle help").short(),
			char('q', CmdQuit, "Quit").short(),
			key(tea.KeyCtrlC, CmdQuit, "Quit"),
		},
		ModeInput: {
			key(tea.KeyEnter, CmdAdd, "Add task").short(),
			key(tea.KeyEsc, CmdLeaveMode, "Back to list").short(),
			key(tea.KeyTab, CmdLeaveMode, "Back to list"),
			key(tea.KeyCtrlC, CmdQuit, "Quit"),
		},
		ModeSelect: {
			char('k', CmdOptionUp, "Previous user"),
			key(tea.KeyUp, CmdOptionUp, "Previous user").short(),
			char('j', CmdOptionDown, "Next user"),
			key(tea.KeyDown, CmdOptionDown, "Next user").short(),
			key(tea.KeyEnter, CmdChoose, "Choose").short(),
			key(tea.KeyEsc, CmdLeaveMode, "Cancel").short(),
			key(tea.KeyCtrlC, CmdQuit, "Quit"),
		},
	}
}
