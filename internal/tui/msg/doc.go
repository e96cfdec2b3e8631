// Package msg defines the message types used by the TUI's Bubbletea event
// loop and the command factories that produce them.
//
// Every network call runs inside a [tea.Cmd] and reports back with exactly
// one message, so all state changes happen in Update, one message at a time.
package msg
