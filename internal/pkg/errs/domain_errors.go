package errs

import "fmt"

// Error taxonomy shared by the domain, usecase and infra layers.
// Handlers map these to HTTP statuses; everything else is a storage failure.
var (
	ErrNotFound            = New("not found")
	ErrConflict            = New("conflict")
	ErrInvalidRequest      = New("invalid request")
	ErrInsufficientBalance = New("insufficient balance")
	ErrInvalidState        = New("invalid state")
	ErrLimitExceeded       = New("plan limit exceeded")
	ErrStorageFailure      = New("storage failure")
)

// InsufficientBalanceError carries the figures shown to the cashier.
type InsufficientBalanceError struct {
	Current  int64
	Required int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient points. Customer has %d points, but %d are required", e.Current, e.Required)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func NewInsufficientBalance(current, required int64) error {
	return &InsufficientBalanceError{Current: current, Required: required}
}

// ConflictError describes a duplicate transaction reference.
// Replay is true when the stored entry was produced by an identical request.
type ConflictError struct {
	Reference     string
	ExistingEntry string
	Replay        bool
}

func (e *ConflictError) Error() string {
	if e.Replay {
		return fmt.Sprintf("transaction reference %q was already applied", e.Reference)
	}
	return fmt.Sprintf("transaction reference %q is already used by a different request", e.Reference)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
