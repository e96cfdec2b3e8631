package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/event"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates a new TUI application. Every event the task list publishes is
// written to logger.
func New(backend msg.Backend, opts Options, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	bus := event.NewBus(logger)
	bus.SubscribeAll(logEvent(logger.WithComponent("events")))

	return &App{
		model:  NewModel(backend, opts, bus, logger),
		bus:    bus,
		logger: logger,
	}
}

// Bus returns the event bus the task list publishes to.
func (a *App) Bus() *event.Bus {
	return a.bus
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	a.logger.Info("tui started", "local", a.model.local)
	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)
	a.bus.Clear()
	a.logger.Info("tui stopped")

	return err
}

func logEvent(logger *logging.Logger) event.Handler {
	return func(e event.Event) {
		switch e := e.(type) {
		case event.UserSelectedEvent:
			logger.Info(e.EventType(), "user_id", e.UserID)
		case event.TasksReplacedEvent:
			if e.Err != nil {
				logger.Warn(e.EventType(), "user_id", e.UserID, "error", e.Err)
				return
			}
			logger.Info(e.EventType(), "user_id", e.UserID, "count", e.Count)
		case event.TaskAddedEvent:
			logger.Info(e.EventType(), "task_id", e.Task.ID, "persisted", e.Persisted)
		case event.TaskDeletedEvent:
			logger.Info(e.EventType(), "kind", e.Kind, "count", len(e.Tasks))
		case event.TaskDeleteFailedEvent:
			logger.Warn(e.EventType(), "task_id", e.Task.ID, "error", e.Err)
		default:
			logger.Debug(e.EventType())
		}
	}
}
