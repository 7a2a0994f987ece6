package layout

import "fmt"

// ValidationError reports a malformed seat category configuration.
type ValidationError struct {
	Category string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("invalid seat category: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid seat category %q: %s: %s", e.Category, e.Field, e.Reason)
}

// ConflictError reports a row label claimed by two categories.
type ConflictError struct {
	Row            string
	FirstCategory  string
	SecondCategory string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("row %q claimed by both %q and %q", e.Row, e.FirstCategory, e.SecondCategory)
}

// SelectionRejected signals a seat toggle that was refused. The selection
// is left unchanged; the message is user-facing.
type SelectionRejected struct {
	SeatID string
	Reason string
}

func (e *SelectionRejected) Error() string {
	return fmt.Sprintf("seat %s: %s", e.SeatID, e.Reason)
}

// SubmissionFailed wraps a booking submission rejected by the backend.
type SubmissionFailed struct {
	Reason string
	Err    error
}

func (e *SubmissionFailed) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("booking submission failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("booking submission failed: %s", e.Reason)
}

func (e *SubmissionFailed) Unwrap() error {
	return e.Err
}
