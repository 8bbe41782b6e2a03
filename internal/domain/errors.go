package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyVerified   = errors.New("already verified")
	ErrAccountPending    = errors.New("account is pending host approval")
)

// InsufficientStockError reports a failed availability check or a
// declined decrement, with enough detail to show the actor what is
// actually left.
type InsufficientStockError struct {
	ItemName    string
	AvailableKg float64
	RequestedKg float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %.2f kg, requested %.2f kg",
		e.ItemName, e.AvailableKg, e.RequestedKg)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError describes a rejected input field. It is raised before
// any store interaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
