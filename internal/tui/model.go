package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/event"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/todo"
	"github.com/Iron-Ham/todolist/internal/tui/keymap"
	"github.com/Iron-Ham/todolist/internal/tui/msg"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// Options configures a Model.
type Options struct {
	// Local runs without a user selector or any network traffic, starting
	// from the fixed seed list.
	Local bool
	List  ListOptions
}

// Model is the root Bubbletea model: a user selector above a task list.
type Model struct {
	keymap keymap.Keymap
	mode   keymap.Mode

	selector Selector
	tasks    TaskList
	selected *int
	local    bool

	showHelp bool
	width    int

	bus    *event.Bus
	logger *logging.Logger
}

// NewModel creates the root model. backend is unused in local mode.
func NewModel(backend msg.Backend, opts Options, bus *event.Bus, logger *logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBus(logger)
	}

	var initial []todo.Task
	if opts.Local {
		backend = nil
		opts.List.RemoteDelete = false
		opts.List.PersistAdds = false
		initial = todo.SeedTasks(opts.List.FallbackOwnerID)
	}

	return Model{
		keymap:   keymap.DefaultKeymap(),
		mode:     keymap.ModeList,
		selector: NewSelector(backend, logger),
		tasks:    NewTaskList(backend, opts.List, initial, bus, logger),
		local:    opts.Local,
		bus:      bus,
		logger:   logger,
	}
}

// Init fetches the user list once. Local mode has nothing to load.
func (m Model) Init() tea.Cmd {
	if m.local {
		return nil
	}
	return m.selector.Init()
}

// Selected returns the selected user id, or nil for none.
func (m Model) Selected() *int {
	return m.selected
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode {
	return m.mode
}

// Tasks returns the task list component of this copy of the Model, for
// reading. The list and row state behind it are shared with m, but fields
// held by value such as the add input and cursor are not: changing those
// through the result does not affect m.
func (m Model) Tasks() *TaskList {
	return &m.tasks
}

// Update dispatches one message.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case msg.UsersLoadedMsg:
		selected := m.selector.HandleLoaded(message)
		return m, m.selectUser(selected)
	}

	cmd := m.tasks.Update(message)
	return m, cmd
}

// selectUser records a new selection and asks the list to follow it.
// Re-choosing the current user does nothing.
func (m *Model) selectUser(id *int) tea.Cmd {
	if m.selected != nil && id != nil && *m.selected == *id {
		return nil
	}
	m.selected = id
	return m.tasks.SetSelection(id)
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(key, m.mode)
	switch m.mode {
	case keymap.ModeInput:
		if !ok {
			return m, m.tasks.Update(key)
		}
		return m.handleInputCommand(cmd)
	case keymap.ModeSelect:
		if !ok {
			return m, nil
		}
		return m.handleSelectCommand(cmd)
	default:
		if !ok {
			return m, nil
		}
		return m.handleListCommand(cmd)
	}
}

func (m Model) handleListCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	cursor := m.tasks.Cursor()
	switch cmd {
	case keymap.CmdCursorUp:
		m.tasks.MoveCursor(-1)
	case keymap.CmdCursorDown:
		m.tasks.MoveCursor(1)
	case keymap.CmdToggle:
		m.tasks.Toggle(cursor)
	case keymap.CmdDelete:
		return m, m.tasks.Delete(cursor)
	case keymap.CmdMoveUp:
		m.tasks.MoveUp(cursor)
	case keymap.CmdMoveDown:
		m.tasks.MoveDown(cursor)
	case keymap.CmdDeleteAll:
		if m.tasks.CanDeleteAll() {
			m.tasks.DeleteAll()
		}
	case keymap.CmdDeleteSelected:
		if m.tasks.CanDeleteSelected() {
			m.tasks.DeleteSelected()
		}
	case keymap.CmdFocusInput:
		m.mode = keymap.ModeInput
		return m, m.tasks.FocusInput()
	case keymap.CmdOpenSelector:
		if !m.local {
			m.selector.Open(m.selected)
			m.mode = keymap.ModeSelect
		}
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
	case keymap.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleInputCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdAdd:
		return m, m.tasks.Add()
	case keymap.CmdLeaveMode:
		m.tasks.BlurInput()
		m.mode = keymap.ModeList
	case keymap.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSelectCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdOptionUp:
		m.selector.MoveCursor(-1)
	case keymap.CmdOptionDown:
		m.selector.MoveCursor(1)
	case keymap.CmdChoose:
		m.mode = keymap.ModeList
		return m, m.selectUser(m.selector.Choose())
	case keymap.CmdLeaveMode:
		m.selector.Close()
		m.mode = keymap.ModeList
	case keymap.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}

// View renders the whole screen.
func (m Model) View() string {
	var b strings.Builder
	if !m.local {
		b.WriteString(m.selector.View(m.selected))
		b.WriteString("\n\n")
	}
	b.WriteString(m.tasks.View())
	b.WriteString("\n\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) helpView() string {
	var parts []string
	seen := make(map[keymap.Command]bool)
	for _, kb := range m.keymap.Bindings(m.mode) {
		if seen[kb.Command] || (!m.showHelp && !kb.Short) {
			continue
		}
		if m.local && kb.Command == keymap.CmdOpenSelector {
			continue
		}
		seen[kb.Command] = true
		keys := m.keymap.KeysFor(kb.Command, m.mode)
		parts = append(parts, styles.HelpKey.Render(keys)+" "+kb.Description)
	}

	sep := " • "
	if m.showHelp {
		sep = "\n"
	}
	bar := strings.Join(parts, sep)
	if m.width > 0 {
		bar = styles.HelpBar.MaxWidth(m.width).Render(bar)
	} else {
		bar = styles.HelpBar.Render(bar)
	}
	return bar
}
