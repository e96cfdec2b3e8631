// Package keymap maps key presses to commands, separately for each TUI mode.
package keymap

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects which bindings are live.
type Mode string

const (
	ModeList   Mode = "list"
	ModeInput  Mode = "input"  // the add field has focus
	ModeSelect Mode = "select" // the user dropdown is open
)

// Command is what a binding asks the model to do.
type Command string

const (
	CmdCursorUp       Command = "cursor_up"
	CmdCursorDown     Command = "cursor_down"
	CmdToggle         Command = "toggle"
	CmdDelete         Command = "delete"
	CmdMoveUp         Command = "move_up"
	CmdMoveDown       Command = "move_down"
	CmdDeleteAll      Command = "delete_all"
	CmdDeleteSelected Command = "delete_selected"
	CmdFocusInput     Command = "focus_input"
	CmdOpenSelector   Command = "open_selector"
	CmdToggleHelp     Command = "toggle_help"
	CmdQuit           Command = "quit"

	CmdAdd       Command = "add"
	CmdLeaveMode Command = "leave_mode"

	CmdOptionUp   Command = "option_up"
	CmdOptionDown Command = "option_down"
	CmdChoose     Command = "choose"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// KeyBinding ties one key to a Command. Character keys use KeyType
// tea.KeyRunes with Rune set.
type KeyBinding struct {
	KeyType     tea.KeyType
	Rune        rune
	Modifiers   Modifier
	Command     Command
	Description string

	// Short bindings are listed in the one-line help bar.
	Short bool
}

// Matches reports whether msg is this key with exactly these modifiers.
// Rune comparison is case sensitive. Pasted text and multi-rune input never
// match, so a paste outside the add field cannot trigger commands.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	switch {
	case msg.Paste || msg.Alt != wantAlt:
		return false
	case kb.KeyType == tea.KeyRunes:
		return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] == kb.Rune
	default:
		return msg.Type == kb.KeyType
	}
}

// String renders the key as shown in help, e.g. "alt+up", "space", "K".
func (kb KeyBinding) String() string {
	name := kb.KeyType.String()
	if kb.KeyType == tea.KeyRunes {
		name = string(kb.Rune)
		if kb.Rune == ' ' {
			name = "space"
		}
	}
	if kb.Modifiers&ModAlt != 0 {
		return "alt+" + name
	}
	return name
}

// Keymap lists each mode's bindings in lookup and help order.
type Keymap map[Mode][]KeyBinding

// GetBinding returns the command of the first binding in mode matching msg.
func (km Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	for _, b := range km[mode] {
		if b.Matches(msg) {
			return b.Command, true
		}
	}
	return "", false
}

// Bindings returns mode's bindings; nil for an unknown mode.
func (km Keymap) Bindings(mode Mode) []KeyBinding {
	return km[mode]
}

// KeysFor joins every key bound to cmd in mode with "/", e.g. "k/up".
func (km Keymap) KeysFor(cmd Command, mode Mode) string {
	var keys []string
	for _, b := range km[mode] {
		if b.Command == cmd {
			keys = append(keys, b.String())
		}
	}
	return strings.Join(keys, "/")
}
