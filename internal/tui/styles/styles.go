// Package styles holds the lipgloss palette and styles of the task list TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Palette, readable on dark terminals.
	PrimaryColor   = lipgloss.Color("#7DD3FC") // sky
	SecondaryColor = lipgloss.Color("#86EFAC") // done
	WarningColor   = lipgloss.Color("#FCD34D") // in flight
	ErrorColor     = lipgloss.Color("#FCA5A5")
	MutedColor     = lipgloss.Color("#94A3B8")
	DisabledColor  = lipgloss.Color("#475569") // unusable controls
	SurfaceColor   = lipgloss.Color("#1E293B")
	TextColor      = lipgloss.Color("#F1F5F9")
	BorderColor    = lipgloss.Color("#64748B")

	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	// Selector header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1)

	// Selector dropdown
	DropdownContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	DropdownItem = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)

	DropdownItemSelected = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	// Add input
	InputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	InputBoxFocused = InputBox.
			BorderForeground(PrimaryColor)

	// Buttons
	Button = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1).
		MarginRight(1)

	ButtonDanger = Button.
			Foreground(ErrorColor).
			Bold(true)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(DisabledColor).
			Padding(0, 1).
			MarginRight(1)

	// Rows
	RowCursor = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	RowText = lipgloss.NewStyle().
		Foreground(TextColor)

	RowTextChecked = lipgloss.NewStyle().
			Foreground(MutedColor).
			Strikethrough(true)

	Checkbox = lipgloss.NewStyle().
			Foreground(MutedColor)

	CheckboxChecked = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	Control = lipgloss.NewStyle().
		Foreground(MutedColor)

	ControlDisabled = lipgloss.NewStyle().
			Foreground(DisabledColor)

	Deleting = lipgloss.NewStyle().
			Foreground(WarningColor)

	EmptyState = lipgloss.NewStyle().
			Bold(true).
			Foreground(MutedColor).
			Padding(1, 2)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)
)

// CheckboxMark returns the rendered checkbox for a task.
func CheckboxMark(checked bool) string {
	if checked {
		return CheckboxChecked.Render("[x]")
	}
	return Checkbox.Render("[ ]")
}

// ButtonStyle picks the style of an action button.
func ButtonStyle(enabled, danger bool) lipgloss.Style {
	switch {
	case !enabled:
		return ButtonDisabled
	case danger:
		return ButtonDanger
	default:
		return Button
	}
}
