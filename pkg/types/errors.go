package types

import "errors"

// Validation errors. These map to HTTP 400 at the API boundary.
var (
	ErrTitleRequired = errors.New("title is required")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidDate   = errors.New("due date must be a calendar date in YYYY-MM-DD form")
	ErrDeadlinePast  = errors.New("deadline must be today or later")
	ErrEmptyPatch    = errors.New("nothing to update")
	ErrEmptyReorder  = errors.New("reorder requires at least one task id")
	ErrDuplicateID   = errors.New("reorder list contains a duplicate task id")
	ErrUnknownID     = errors.New("reorder list references an unknown task id")
)

// ErrNotFound reports a mutation against a row that does not exist.
// Maps to HTTP 404 at the API boundary.
var ErrNotFound = errors.New("not found")

// validationErrors is the set of errors classified as caller mistakes.
var validationErrors = []error{
	ErrTitleRequired,
	ErrNameRequired,
	ErrInvalidDate,
	ErrDeadlinePast,
	ErrEmptyPatch,
	ErrEmptyReorder,
	ErrDuplicateID,
	ErrUnknownID,
}

// IsValidation reports whether err is (or wraps) one of the validation
// sentinels. Everything else that reaches the API boundary is treated as a
// store failure.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
