package services

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected input: too long, or a malformed option value.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QuotaExceededError is returned when a user has spent their daily analysis
// quota. It carries the ceiling so the client can render it.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily analysis limit of %d reached", e.Limit)
}

// ErrReportNotFound covers both a genuinely absent report and a report owned
// by someone else. The two cases are deliberately indistinguishable so
// existence of other users' reports never leaks.
var ErrReportNotFound = errors.New("report not found")

var ErrTodoNotFound = errors.New("todo not found")
