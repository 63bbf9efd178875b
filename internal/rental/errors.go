// Package rental holds the pure booking rules: how long a rental lasts, what
// it costs, and the error kinds a booking can fail with.  Nothing in this
// package touches the database.
package rental

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure.  Callers branch on the kind rather than
// on concrete error values.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidDuration
	KindClientNotFound
	KindVehicleNotFound
	KindVehicleUnavailable
	KindPersistenceFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidDuration:
		return "invalid_duration"
	case KindClientNotFound:
		return "client_not_found"
	case KindVehicleNotFound:
		return "vehicle_not_found"
	case KindVehicleUnavailable:
		return "vehicle_unavailable"
	case KindPersistenceFailure:
		return "persistence_failure"
	}
	return "unknown"
}

// Domain reports whether the kind is a business-rule rejection as opposed to
// an infrastructure failure.
func (k Kind) Domain() bool {
	return k >= KindInvalidDuration && k <= KindVehicleUnavailable
}

// Error is the tagged error returned by booking operations.  Op names the
// step that failed; Err carries the underlying cause when there is one.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrClientNotFound)
// works regardless of Op and cause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidDuration    = &Error{Kind: KindInvalidDuration}
	ErrClientNotFound     = &Error{Kind: KindClientNotFound}
	ErrVehicleNotFound    = &Error{Kind: KindVehicleNotFound}
	ErrVehicleUnavailable = &Error{Kind: KindVehicleUnavailable}
	ErrPersistence        = &Error{Kind: KindPersistenceFailure}
)

// Persistence wraps a data-access failure that happened during op.
func Persistence(op string, err error) *Error {
	return &Error{Kind: KindPersistenceFailure, Op: op, Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
