// Package event provides a synchronous pub-sub bus used by the task list to
// announce state changes without knowing who listens.
//
// The TUI publishes:
//   - [UserSelectedEvent] ("user.selected"): the selector reported a user or none
//   - [TasksReplacedEvent] ("tasks.replaced"): a fetch replaced the whole list
//   - [TaskAddedEvent] ("task.added"): a task was prepended
//   - [TaskDeletedEvent] ("task.deleted"): one or more tasks were removed
//   - [TaskDeleteFailedEvent] ("task.delete_failed"): a remote delete was rejected
//
// The app subscribes its logger to every event with [Bus.SubscribeAll].
//
//	bus := event.NewBus()
//	bus.Subscribe("task.added", func(e event.Event) {
//	    added := e.(event.TaskAddedEvent)
//	    fmt.Println(added.Task.Text)
//	})
//	bus.Publish(event.NewTaskAddedEvent(task, false))
//
// Handlers run on the publisher's goroutine, in registration order. A
// panicking handler is recovered and does not stop delivery to the others.
package event
