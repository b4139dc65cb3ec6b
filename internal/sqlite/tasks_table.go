package sqlite

// This file implements the task operations: the canonical sorted view,
// creation, partial update, deletion, and the transactional reorder.

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// taskColumns is the joined projection returned by every task read.
const taskColumns = `t.id, t.title, t.status, t.due_date, t.category_id, t.position,
       COALESCE(c.name, '') AS category_name`

// listTasksSQL produces the canonical order: tasks without a due date sort
// after all dated tasks, then due date ascending, then position ascending,
// then id descending as the recency tie-break.
const listTasksSQL = `
SELECT ` + taskColumns + `
FROM tasks t
LEFT JOIN categories c ON t.category_id = c.id
ORDER BY
    CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END,
    t.due_date ASC,
    t.position ASC,
    t.id DESC`

// ListTasks returns every task joined with its category name in canonical
// order. Always a full scan; there is no pagination or filtering.
func (b *Backend) ListTasks(ctx context.Context) ([]types.TaskRow, error) {
	rows, err := b.db.QueryContext(ctx, listTasksSQL)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.TaskRow{}
	for rows.Next() {
		task, err := hydrateTask(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask validates input and inserts a task with status=false and
// position seeded from the current time in milliseconds, so new tasks sort
// after all existing ones absent a due date. Returns the created row joined
// with its category name.
func (b *Backend) CreateTask(ctx context.Context, in types.NewTask) (*types.TaskRow, error) {
	title, err := types.ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	var dueDate *string
	if in.DueDate != nil && *in.DueDate != "" {
		if err := types.ValidateDueDate(*in.DueDate, b.today()); err != nil {
			return nil, err
		}
		dueDate = in.DueDate
	}

	position := b.clock.Now().UnixMilli()

	res, err := b.db.ExecContext(ctx,
		"INSERT INTO tasks (title, status, position, category_id, due_date) VALUES (?, 0, ?, ?, ?)",
		title, position, in.CategoryID, dueDate,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted task id: %w", err)
	}

	return b.getTaskRow(ctx, id)
}

// UpdateTask applies the supplied fields of patch to one task and returns
// the full row afterwards. An empty patch fails validation without touching
// the row. Existence is detected by the post-write read, so updating a
// vanished row reports ErrNotFound. Due dates are not re-validated against
// today here; that check applies on creation only.
func (b *Backend) UpdateTask(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error) {
	if patch.Empty() {
		return nil, types.ErrEmptyPatch
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, boolToInt(*patch.Status))
	}
	switch {
	case patch.ClearCategory:
		sets = append(sets, "category_id = NULL")
	case patch.CategoryID != nil:
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	switch {
	case patch.ClearDueDate:
		sets = append(sets, "due_date = NULL")
	case patch.DueDate != nil:
		sets = append(sets, "due_date = ?")
		args = append(args, *patch.DueDate)
	}
	if patch.Position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *patch.Position)
	}

	args = append(args, id)
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}

	return b.getTaskRow(ctx, id)
}

// DeleteTask removes a task by id. Deleting a missing id succeeds; there is
// no existence check and no cascade.
func (b *Backend) DeleteTask(ctx context.Context, id int64) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// ReorderTasks rewrites each listed task's position to its 0-based index in
// ids, inside a single transaction. Empty lists, duplicate ids, and unknown
// ids are rejected; an unknown id rolls the whole rewrite back so no position
// from this call is retained. Tasks not listed keep their positions.
func (b *Backend) ReorderTasks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return types.ErrEmptyReorder
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("task %d listed twice: %w", id, types.ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reorder transaction: %w", err)
	}
	defer tx.Rollback()

	for index, id := range ids {
		res, err := tx.ExecContext(ctx, "UPDATE tasks SET position = ? WHERE id = ?", index, id)
		if err != nil {
			return fmt.Errorf("writing position for task %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking position write for task %d: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("task %d: %w", id, types.ErrUnknownID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}

// getTaskRow reads one task joined with its category name.
func (b *Backend) getTaskRow(ctx context.Context, id int64) (*types.TaskRow, error) {
	row := b.db.QueryRowContext(ctx, `
SELECT `+taskColumns+`
FROM tasks t
LEFT JOIN categories c ON t.category_id = c.id
WHERE t.id = ?`, id)

	var t types.TaskRow
	var status int64
	err := row.Scan(&t.ID, &t.Title, &status, &t.DueDate, &t.CategoryID, &t.Position, &t.CategoryName)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	t.Status = status != 0
	return &t, nil
}

// hydrateTask converts a row from sql.Rows into a types.TaskRow.
func hydrateTask(rows *sql.Rows) (*types.TaskRow, error) {
	var t types.TaskRow
	var status int64
	if err := rows.Scan(&t.ID, &t.Title, &status, &t.DueDate, &t.CategoryID, &t.Position, &t.CategoryName); err != nil {
		return nil, err
	}
	t.Status = status != 0
	return &t, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
