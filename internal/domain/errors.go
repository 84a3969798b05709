package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. end date before start date, trip no longer open).
// Handlers should map this to HTTP 400 with the wrapped Turkish message.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned when an application for the same trip and student
// phone already exists. The unique constraint on (trip_id, ogrenci_telefon)
// is the authoritative signal; the pre-insert lookup only provides a nicer
// message on the common serialized path.
var ErrDuplicate = errors.New("duplicate application")

// UpstreamError carries a non-success response from the sibling trip service
// so the proxy handlers can re-emit the same status code and message locally.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}
