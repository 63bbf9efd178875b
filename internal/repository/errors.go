// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// rental service and handlers to distinguish a missing row from a failed
// query without depending on database/sql directly.
package repository

import "errors"

// ErrReservationNotFound is returned when no reservation matches the
// requested id.  Handlers translate it into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvoiceNotFound is returned when no invoice matches the requested
// number.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrVehicleNotFound is returned by lookups keyed by plate when the vehicle
// does not exist.
var ErrVehicleNotFound = errors.New("vehicle not found")
