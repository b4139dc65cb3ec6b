package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// TaskList mirrors the server's task view. Every mutation follows the same
// discipline: send the request, and only fold the change into the local view
// once the server acknowledges it. On failure the local view is left exactly
// as it was, so a caller rendering from Tasks never shows an unconfirmed
// change.
type TaskList struct {
	client *Client

	mu    sync.Mutex
	tasks []types.TaskRow
}

// NewTaskList returns an empty view bound to client. Call Refresh to load it.
func NewTaskList(client *Client) *TaskList {
	return &TaskList{client: client}
}

// Refresh replaces the local view with the server's canonical order. It is
// the only way positions re-sync after a reorder.
func (l *TaskList) Refresh(ctx context.Context) error {
	tasks, err := l.client.Tasks(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.tasks = tasks
	l.mu.Unlock()
	return nil
}

// Tasks returns a copy of the local view.
func (l *TaskList) Tasks() []types.TaskRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.TaskRow, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Toggle flips a task's done state. The local checkbox state changes only
// after the server confirms; a failed call leaves it showing the old state.
func (l *TaskList) Toggle(ctx context.Context, id int64) error {
	task, err := l.find(id)
	if err != nil {
		return err
	}
	desired := !task.Status

	row, err := l.client.UpdateTask(ctx, id, types.TaskPatch{Status: &desired})
	if err != nil {
		return err
	}
	l.apply(*row)
	return nil
}

// Edit replaces a task's title after the server confirms the update. On
// failure the local title is unchanged.
func (l *TaskList) Edit(ctx context.Context, id int64, title string) error {
	if _, err := l.find(id); err != nil {
		return err
	}
	row, err := l.client.UpdateTask(ctx, id, types.TaskPatch{Title: &title})
	if err != nil {
		return err
	}
	l.apply(*row)
	return nil
}

// Remove deletes a task from the server and drops it from the local view
// only after the acknowledgment.
func (l *TaskList) Remove(ctx context.Context, id int64) error {
	if err := l.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// Reorder submits the desired order and then reloads the full list; no
// speculative local reordering is applied.
func (l *TaskList) Reorder(ctx context.Context, ids []int64) error {
	if err := l.client.Reorder(ctx, ids); err != nil {
		return err
	}
	return l.Refresh(ctx)
}

// CompletedCount returns the number of done tasks in the local view.
func (l *TaskList) CompletedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.tasks {
		if l.tasks[i].Status {
			n++
		}
	}
	return n
}

// UncompletedCount returns the number of not-done tasks in the local view.
func (l *TaskList) UncompletedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.tasks {
		if !l.tasks[i].Status {
			n++
		}
	}
	return n
}

// find looks a task up in the local view.
func (l *TaskList) find(id int64) (types.TaskRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return l.tasks[i], nil
		}
	}
	return types.TaskRow{}, fmt.Errorf("task %d not in local view: %w", id, types.ErrNotFound)
}

// apply replaces the local copy of one task with the server's row.
func (l *TaskList) apply(row types.TaskRow) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.tasks {
		if l.tasks[i].ID == row.ID {
			l.tasks[i] = row
			return
		}
	}
}
