// Package config provides the interactive editor behind `todolist config edit`.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/todolist/internal/config"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// Item types
const (
	TypeString = "string"
	TypeBool   = "bool"
	TypeInt    = "int"
	TypeSelect = "select"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Categories returns the editable settings grouped for display.
func Categories() []Category {
	levels := make([]string, 0, len(logging.ValidLevels()))
	for _, l := range logging.ValidLevels() {
		levels = append(levels, strings.ToLower(l))
	}

	return []Category{
		{
			Name: "API",
			Items: []ConfigItem{
				{Key: "api.base_url", Label: "Base URL", Description: "Root of the users/todos API", Type: TypeString},
				{Key: "api.timeout_seconds", Label: "Timeout (s)", Description: "Per-request timeout in seconds (0 = none)", Type: TypeInt},
			},
		},
		{
			Name: "Tasks",
			Items: []ConfigItem{
				{Key: "tasks.source", Label: "Source", Description: "remote loads users and tasks from the API; local starts from a fixed list", Type: TypeSelect, Options: config.ValidSources()},
				{Key: "tasks.remote_delete", Label: "Remote Delete", Description: "Send DELETE and remove the row only once it succeeds", Type: TypeBool},
				{Key: "tasks.persist_adds", Label: "Persist Adds", Description: "Send PUT for every task added", Type: TypeBool},
				{Key: "tasks.discard_stale_fetches", Label: "Discard Stale Fetches", Description: "Ignore task responses for a user that is no longer selected", Type: TypeBool},
				{Key: "tasks.fallback_owner_id", Label: "Fallback Owner", Description: "Owner of tasks added while no user is selected", Type: TypeInt},
			},
		},
		{
			Name: "TUI",
			Items: []ConfigItem{
				{Key: "tui.max_text_width", Label: "Max Text Width", Description: "Task text longer than this is truncated", Type: TypeInt},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{Key: "logging.enabled", Label: "Enabled", Description: "Write debug.log", Type: TypeBool},
				{Key: "logging.level", Label: "Level", Description: "Minimum level written to the log", Type: TypeSelect, Options: levels},
				{Key: "logging.dir", Label: "Directory", Description: "Where debug.log is written (empty = config dir/logs)", Type: TypeString},
				{Key: "logging.max_size_mb", Label: "Max Size (MB)", Description: "Rotate the log past this size", Type: TypeInt},
				{Key: "logging.max_backups", Label: "Max Backups", Description: "Rotated log files to keep", Type: TypeInt},
			},
		},
		{
			Name: "Export",
			Items: []ConfigItem{
				{Key: "export.max_parallel", Label: "Max Parallel", Description: "Concurrent per-user fetches when exporting", Type: TypeInt},
			},
		},
		{
			Name: "Mock API",
			Items: []ConfigItem{
				{Key: "mock_api.addr", Label: "Listen Address", Description: "Address of `todolist mock-api`", Type: TypeString},
			},
		},
	}
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories    []Category
	categoryIndex int
	itemIndex     int
	scrollOffset  int
	width         int
	height        int

	editing     bool
	textInput   textinput.Model
	selectIndex int

	errorMsg string
	infoMsg  string
	quitting bool

	configFile string
}

// New creates a new config model that saves to configFile.
func New(configFile string) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		categories: Categories(),
		textInput:  ti,
		configFile: configFile,
	}
}

// Run shows the editor until the user quits.
func Run(configFile string) error {
	p := tea.NewProgram(New(configFile), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case TypeBool:
				m.apply(item, !viper.GetBool(item.Key))
			case TypeSelect:
				m.editing = true
				m.selectIndex = m.currentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(displayValue(item))
				return m, m.textInput.Focus()
			}

		case "r":
			item := m.currentItem()
			m.apply(item, config.DefaultValues()[item.Key])
		}
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil

	case "enter":
		if item.Type == TypeSelect {
			m.apply(item, item.Options[m.selectIndex])
			m.stopEditing()
			return m, nil
		}
		value, err := parseValue(item, m.textInput.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if m.apply(item, value) {
			m.stopEditing()
		}
		return m, nil

	case "up", "k":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type == TypeSelect {
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// apply sets item to value, keeps it only if the whole configuration still
// validates, and saves. It reports whether the value was kept.
func (m *Model) apply(item ConfigItem, value any) bool {
	previous := viper.Get(item.Key)
	viper.Set(item.Key, value)

	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		m.errorMsg = err.Error()
		return false
	}

	if err := m.save(); err != nil {
		m.errorMsg = err.Error()
		return false
	}
	m.infoMsg = "Saved!"
	return true
}

func (m Model) save() error {
	if err := os.MkdirAll(filepath.Dir(m.configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(m.configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// parseValue converts typed text into the item's value type.
func parseValue(item ConfigItem, text string) (any, error) {
	text = strings.TrimSpace(text)
	switch item.Type {
	case TypeInt:
		v, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("expected integer value")
		}
		return v, nil
	case TypeBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return v, nil
	case TypeSelect:
		if !slices.Contains(item.Options, text) {
			return nil, fmt.Errorf("invalid option: %s", text)
		}
		return text, nil
	default:
		return text, nil
	}
}

func displayValue(item ConfigItem) string {
	switch item.Type {
	case TypeBool:
		return strconv.FormatBool(viper.GetBool(item.Key))
	case TypeInt:
		return strconv.Itoa(viper.GetInt(item.Key))
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) currentSelectIndex() int {
	item := m.currentItem()
	if i := slices.Index(item.Options, viper.GetString(item.Key)); i >= 0 {
		return i
	}
	return 0
}

// totalLines counts the lines of the category list: a header, the items and
// a blank line per category.
func (m Model) totalLines() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.Items) + 2
	}
	return n
}

// currentSelectionLine is the line of the selected item within the list.
func (m Model) currentSelectionLine() int {
	line := 0
	for ci := 0; ci < m.categoryIndex; ci++ {
		line += len(m.categories[ci].Items) + 2
	}
	return line + 1 + m.itemIndex
}

func (m *Model) ensureSelectionVisible(available int) {
	if available <= 0 {
		return
	}
	line := m.currentSelectionLine()
	if line < m.scrollOffset {
		m.scrollOffset = line
	}
	if line >= m.scrollOffset+available {
		m.scrollOffset = line - available + 1
	}
	m.scrollOffset = max(0, min(m.scrollOffset, m.totalLines()-available))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := styles.Header
	if m.width > 4 {
		header = header.Width(m.width - 4)
	}
	b.WriteString(header.Render("todolist configuration"))
	b.WriteString("\n")

	path := m.configFile
	if _, err := os.Stat(path); err != nil {
		path += " (not created)"
	}
	b.WriteString(styles.Muted.Render("Config file: " + path))
	b.WriteString("\n\n")

	var lines []string
	for ci, cat := range m.categories {
		catStyle := styles.Muted.Bold(true)
		if ci == m.categoryIndex {
			catStyle = styles.Primary.Bold(true)
		}
		lines = append(lines, catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		for ii, item := range cat.Items {
			lines = append(lines, renderItem(item, ci == m.categoryIndex && ii == m.itemIndex))
		}
		lines = append(lines, "")
	}

	// Header, path, description and help take about ten lines.
	if available := m.height - 10; m.height > 0 && available < len(lines) {
		m.ensureSelectionVisible(available)
		end := min(len(lines), m.scrollOffset+available)
		lines = lines[m.scrollOffset:end]
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func renderItem(item ConfigItem, selected bool) string {
	label := fmt.Sprintf("%-24s", item.Label)
	value := displayValue(item)
	if value == "" {
		value = "(empty)"
	}

	if selected {
		return fmt.Sprintf("  %s %s  %s",
			styles.Secondary.Render(">"),
			styles.Text.Bold(true).Render(label),
			styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(label), styles.Text.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.PrimaryColor).
		Padding(1, 2).
		Width(50)

	var content strings.Builder
	if item.Type == TypeSelect {
		fmt.Fprintf(&content, "Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(styles.DropdownItemSelected.Render("> " + opt))
			} else {
				content.WriteString(styles.DropdownItem.Render("  " + opt))
			}
			content.WriteString("\n")
		}
	} else {
		fmt.Fprintf(&content, "Edit %s:\n\n", item.Label)
		content.WriteString(m.textInput.View())
	}
	return box.Render(content.String())
}

func (m Model) renderHelp() string {
	key := styles.HelpKey.Render
	if m.editing {
		return styles.HelpBar.Render(key("enter") + " save  " + key("esc") + " cancel")
	}
	return styles.HelpBar.Render(
		key("j/k") + " navigate  " +
			key("tab") + " next category  " +
			key("enter/space") + " edit  " +
			key("r") + " reset  " +
			key("q") + " quit",
	)
}
