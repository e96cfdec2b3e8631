// Package todo holds the task list model: the Task and User shapes used for
// rendering, the transforms from the remote API records, and List, the
// ordered in-memory collection that the task list view mutates.
//
// Position in a List is the task's rank. Nothing else orders tasks.
package todo
