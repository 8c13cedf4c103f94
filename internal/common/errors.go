package common

import "errors"

// Engine error kinds. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can map them to HTTP responses with errors.Is.
var (
	// ErrInsufficientStock: a decrease or transfer would drive on-hand
	// quantity negative or exceed the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvariantViolation: reserved quantity would exceed on-hand quantity.
	// Signals a contention or logic defect, never clamped silently.
	ErrInvariantViolation = errors.New("stock invariant violation")

	// ErrInvalidStateTransition: a workflow method was called from a state
	// that does not permit it.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrValidation: missing or invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: unknown product, warehouse, supplier, order or transfer.
	ErrNotFound = errors.New("not found")
)
