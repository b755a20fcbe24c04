package store

import (
	"fmt"

	"backend/internal/models"
)

// ValidationError reports malformed or missing caller input. It maps to a
// 400-class response and is never retried.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// NotFoundError reports a referenced order or customer id that does not exist.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found", e.ID)
}

// InvalidTransitionError reports a status change that the pipeline does not
// allow. To is empty when the line is already in a terminal state.
type InvalidTransitionError struct {
	From models.Status
	To   models.Status
}

func (e InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("status %q is terminal", e.From)
	}
	return fmt.Sprintf("illegal status transition %q → %q", e.From, e.To)
}

// StoreUnavailableError wraps a backing-store failure. Callers may retry with
// backoff; the store itself never retries these.
type StoreUnavailableError struct {
	Err error
}

func (e StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e StoreUnavailableError) Unwrap() error {
	return e.Err
}
