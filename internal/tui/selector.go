package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/todo"
	"github.com/Iron-Ham/todolist/internal/tui/msg"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// noneValue is the value of the placeholder option. It does not parse as an
// id, so choosing it reports no user.
const noneValue = ""

// Option is one entry of the user selection control.
type Option struct {
	Value string
	Label string
}

// Selector fetches the user list once and reports which user is chosen.
// The current selection itself is owned by the App and passed to View.
type Selector struct {
	backend msg.Backend
	logger  *logging.Logger

	users    []todo.User
	loaded   bool
	fetching bool

	open   bool
	cursor int // index into Options() while open
}

// NewSelector creates a Selector that loads users from backend.
func NewSelector(backend msg.Backend, logger *logging.Logger) Selector {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Selector{
		backend: backend,
		logger:  logger.WithComponent("selector"),
	}
}

// Init starts the user fetch. It returns nil while a fetch is in flight and
// once a result has arrived, so the request is made at most once per mount.
func (s *Selector) Init() tea.Cmd {
	if s.loaded || s.fetching || s.backend == nil {
		return nil
	}
	s.fetching = true
	return msg.FetchUsers(s.backend)
}

// Users returns the loaded selector entries.
func (s *Selector) Users() []todo.User {
	return s.users
}

// IsOpen reports whether the option list is shown.
func (s *Selector) IsOpen() bool {
	return s.open
}

// HandleLoaded stores the fetched users and returns the automatic selection:
// the first user's id, or nil when there are none or the fetch failed.
func (s *Selector) HandleLoaded(m msg.UsersLoadedMsg) *int {
	s.loaded = true
	s.fetching = false
	if m.Err != nil {
		s.logger.Warn("user fetch failed", "error", m.Err)
		s.users = nil
		return nil
	}

	s.users = todo.UsersFromAPI(m.Users)
	s.logger.Debug("users loaded", "count", len(s.users), "users", s.users)
	if len(s.users) == 0 {
		return nil
	}
	id := s.users[0].ID
	return &id
}

// Options returns the control's entries: the "(none)" placeholder, then one
// per user with the decimal id as value.
func (s *Selector) Options() []Option {
	opts := make([]Option, 0, len(s.users)+1)
	opts = append(opts, Option{Value: noneValue, Label: "(none)"})
	for _, u := range s.users {
		opts = append(opts, Option{Value: strconv.Itoa(u.ID), Label: u.Label()})
	}
	return opts
}

// Open shows the option list with the cursor on the current selection.
func (s *Selector) Open(selected *int) {
	s.open = true
	s.cursor = 0
	if selected == nil {
		return
	}
	want := strconv.Itoa(*selected)
	for i, opt := range s.Options() {
		if opt.Value == want {
			s.cursor = i
			return
		}
	}
}

// Close hides the option list without choosing.
func (s *Selector) Close() {
	s.open = false
}

// MoveCursor moves the highlighted option by delta, clamped to the list.
func (s *Selector) MoveCursor(delta int) {
	n := len(s.Options())
	s.cursor = max(0, min(n-1, s.cursor+delta))
}

// Choose closes the list and returns the highlighted option's selection.
func (s *Selector) Choose() *int {
	s.open = false
	opts := s.Options()
	return ParseSelection(opts[s.cursor].Value)
}

// ParseSelection turns a control value into a user id; values that are not
// integers mean no user.
func ParseSelection(value string) *int {
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &id
}

// View renders the header and, while open, the option list.
func (s *Selector) View(selected *int) string {
	var b strings.Builder

	current := "(none)"
	switch {
	case !s.loaded:
		current = "loading users..."
	case selected != nil:
		for _, u := range s.users {
			if u.ID == *selected {
				current = u.Label()
				break
			}
		}
	}
	b.WriteString(styles.Header.Render("Select User  " + styles.Text.Render(current)))

	if s.open {
		var items []string
		for i, opt := range s.Options() {
			style := styles.DropdownItem
			if i == s.cursor {
				style = styles.DropdownItemSelected
			}
			items = append(items, style.Render(opt.Label))
		}
		b.WriteString("\n")
		b.WriteString(styles.DropdownContainer.Render(strings.Join(items, "\n")))
	}
	return b.String()
}
