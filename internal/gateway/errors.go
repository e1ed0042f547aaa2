package gateway

import (
	"errors"
	"fmt"
)

// ErrInvalidISBN is returned when the backend rejects an add-by-ISBN request
// with 400.
var ErrInvalidISBN = errors.New("invalid isbn")

// ErrInvalidRating is returned when the backend rejects a rating update with 400.
var ErrInvalidRating = errors.New("invalid rating")

// ErrNotFound is returned when the requested user or book does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when the backend answers 409, e.g. a duplicate
// user email on create.
var ErrConflict = errors.New("conflict")

// TransportError covers every remote failure that is not one of the
// recognized domain statuses: unexpected status codes, network errors,
// and undecodable bodies. Status is 0 when no response was received.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend request failed: %v", e.Err)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }
