package types

import (
	"strings"
	"time"
)

// ISODateLayout is the wire and storage format for calendar dates. Dates have
// no time component; lexicographic order over this layout equals chronological
// order, which the store relies on for sorting and the deadline check relies
// on for comparison.
const ISODateLayout = "2006-01-02"

// Task is a single to-do item.
type Task struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Status     bool    `json:"status"`
	DueDate    *string `json:"due_date"`
	CategoryID *int64  `json:"category_id"`
	Position   int64   `json:"position"`
}

// TaskRow is a Task joined with its category name for display. CategoryName
// is the empty string when the task has no category.
type TaskRow struct {
	Task
	CategoryName string `json:"category_name"`
}

// NewTask carries the caller-supplied fields for task creation. The store
// assigns ID, Position, and the initial not-done status.
type NewTask struct {
	Title      string  `json:"title"`
	CategoryID *int64  `json:"category_id,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
}

// TaskPatch is a sparse set of field changes for one task. A nil pointer
// leaves the field untouched. ClearCategory and ClearDueDate set the column
// to NULL and take precedence over the corresponding pointer.
type TaskPatch struct {
	Title         *string
	Status        *bool
	CategoryID    *int64
	ClearCategory bool
	DueDate       *string
	ClearDueDate  bool
	Position      *int64
}

// Empty reports whether the patch touches no field at all. An empty patch is
// a validation error, never a no-op write.
func (p TaskPatch) Empty() bool {
	return p.Title == nil &&
		p.Status == nil &&
		p.CategoryID == nil && !p.ClearCategory &&
		p.DueDate == nil && !p.ClearDueDate &&
		p.Position == nil
}

// ISODate formats t as a local calendar date.
func ISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// ValidateTitle trims title and returns it, or ErrTitleRequired when nothing
// remains.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}

// ValidateDueDate checks that date is a well-formed calendar date no earlier
// than today. The comparison is lexicographic, matching the storage order.
// Enforced on creation only; partial updates do not re-check.
func ValidateDueDate(date, today string) error {
	if _, err := time.Parse(ISODateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if date < today {
		return ErrDeadlinePast
	}
	return nil
}
