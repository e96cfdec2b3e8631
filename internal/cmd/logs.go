package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/todolist/internal/config"
	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/logging"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View the diagnostic log",
		Long: `View and filter debug.log, where failed fetches, failed deletes and raw
API responses are recorded.

Examples:
  # Show the last 50 entries
  todolist logs

  # Follow the log while the TUI runs in another terminal
  todolist logs -f

  # Only warnings and errors from the last hour
  todolist logs --level warn --since 1h

  # Everything about one request
  todolist logs --grep 3f2a9c`,
		Args: cobra.NoArgs,
		RunE: runLogs,
	}
	cmd.Flags().IntP("tail", "n", 50, "number of entries to show (0 for all)")
	cmd.Flags().BoolP("follow", "f", false, "follow log output (like tail -f)")
	cmd.Flags().String("level", "", "filter by minimum level (debug/info/warn/error)")
	cmd.Flags().String("since", "", "show entries since duration ago (e.g., 1h, 30m)")
	cmd.Flags().String("grep", "", "filter entries matching pattern (regex)")
	return cmd
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	UserID    *int           `json:"user_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Extra     map[string]any `json:"-"`
}

// UnmarshalJSON keeps fields other than the known ones in Extra.
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type alias logEntry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "component", "user_id", "request_id"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// levelPriority returns the priority of a log level for filtering, -1 if unknown.
func levelPriority(level string) int {
	return slices.Index(logging.ValidLevels(), strings.ToUpper(level))
}

// logFilter selects the entries to print.
type logFilter struct {
	minLevel int // -1 for all
	since    time.Time
	grep     *regexp.Regexp
}

func (f logFilter) pass(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}
	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}
	if f.grep != nil {
		text := entry.Msg + " " + entry.Component + " " + entry.RequestID
		for _, v := range entry.Extra {
			text += " " + fmt.Sprint(v)
		}
		if !f.grep.MatchString(text) {
			return false
		}
	}
	return true
}

func formatLogEntry(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(colorGray + "[" + entry.Time.Format("15:04:05.000") + "]" + colorReset)
	sb.WriteString(" " + levelColor(entry.Level) + "[" + strings.ToUpper(entry.Level) + "]" + colorReset)
	if entry.Component != "" {
		sb.WriteString(" " + colorCyan + entry.Component + colorReset)
	}
	sb.WriteString(" " + entry.Msg)

	if entry.UserID != nil {
		fmt.Fprintf(&sb, " %suser_id=%s%d", colorCyan, colorReset, *entry.UserID)
	}
	if entry.RequestID != "" {
		fmt.Fprintf(&sb, " %srequest_id=%s%s", colorCyan, colorReset, entry.RequestID)
	}

	keys := make([]string, 0, len(entry.Extra))
	for k := range entry.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s%s=%s%v", colorCyan, k, colorReset, entry.Extra[k])
	}
	return sb.String()
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logPath := filepath.Join(cfg.Logging.ResolveDir(), logging.LogFileName)
	out := cmd.OutOrStdout()
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No logs found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	filter := logFilter{minLevel: -1}
	if level, _ := cmd.Flags().GetString("level"); level != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(level))
	}
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		d, err := time.ParseDuration(since)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-d)
	}
	if pattern, _ := cmd.Flags().GetString("grep"); pattern != "" {
		if filter.grep, err = regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	if follow, _ := cmd.Flags().GetBool("follow"); follow {
		return followLogs(cmd.Context(), out, logPath, filter)
	}
	tail, _ := cmd.Flags().GetInt("tail")
	return displayLogs(out, logPath, tail, filter)
}

// formatLine formats one raw line, reporting false when the filter drops it.
// Lines that are not JSON are shown as they are.
func formatLine(line string, filter logFilter) (string, bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line, true
	}
	if !filter.pass(&entry) {
		return "", false
	}
	return formatLogEntry(&entry), true
}

func displayLogs(out io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	// Raw API bodies can make long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if formatted, ok := formatLine(line, filter); ok {
			entries = append(entries, formatted)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
	return nil
}

// followLogs prints entries appended to the log until ctx is done.
func followLogs(ctx context.Context, out io.Writer, logPath string, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	var partial string
	for {
		chunk, err := reader.ReadString('\n')
		partial += chunk
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}

		line := strings.TrimSpace(partial)
		partial = ""
		if line == "" {
			continue
		}
		if formatted, ok := formatLine(line, filter); ok {
			fmt.Fprintln(out, formatted)
		}
	}
}
