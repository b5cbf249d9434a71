package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyText     = errors.New("model: task text is required")
	ErrEmptyDate     = errors.New("model: task date is required")
	ErrInvalidDate   = errors.New("model: task date must be YYYY-MM-DD")
	ErrInvalidFilter = errors.New("model: invalid filter")
)

// Task is one to-do item. The JSON tags are the persisted wire format.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// ValidationError reports input that cannot become a task. It unwraps to one
// of the Err* sentinels above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateInput checks the creation contract shared by every caller: text must
// be non-blank after trimming and date must be non-empty.
func ValidateInput(text, date string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Err: ErrEmptyText}
	}
	if date == "" {
		return &ValidationError{Field: "date", Err: ErrEmptyDate}
	}
	return nil
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	return ValidateInput(t.Text, t.Date)
}
