package access

import (
	"errors"
	"log"
	"net/http"
)

type Kind int

const (
	KindUnauthenticated Kind = iota
	KindForbidden
	KindNotFound
	KindConflict
	KindCapacityExceeded
	KindGone
	KindInvalidOperation
	KindInternal
)

// Error is the engine's error taxonomy. Forbidden and NotFound carry fixed
// messages only; store error text never reaches a caller through them.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUnauthenticated = &Error{KindUnauthenticated, "not logged in"}
	ErrForbidden       = &Error{KindForbidden, "access denied"}
	// ErrAlbumNotFound is also returned when a non-member probes an existing
	// album, so an album id can't be confirmed by unauthorized callers.
	ErrAlbumNotFound = &Error{KindNotFound, "album not found"}
)

func notFound(message string) *Error {
	return &Error{KindNotFound, message}
}

func conflict(message string) *Error {
	return &Error{KindConflict, message}
}

func capacityExceeded(message string) *Error {
	return &Error{KindCapacityExceeded, message}
}

func gone(message string) *Error {
	return &Error{KindGone, message}
}

func invalidOperation(message string) *Error {
	return &Error{KindInvalidOperation, message}
}

// internal logs the store error and returns an opaque replacement.
func internal(err error) *Error {
	log.Printf("access: store error: %v", err)
	return &Error{KindInternal, "DB error"}
}

// HTTPStatus maps every error kind to a distinct status code.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindCapacityExceeded:
		return http.StatusUnprocessableEntity
	case KindGone:
		return http.StatusGone
	case KindInvalidOperation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
