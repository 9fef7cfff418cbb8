// Package fault defines the error taxonomy shared by the simulation core.
// Every rejected operation carries a kind plus a human-readable reason so the
// presentation layer can report failures without inspecting package internals.
package fault

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// Validation marks malformed input, e.g. a non-positive loan amount.
	Validation Kind = "validation"
	// InsufficientFunds marks an operation the player cannot pay for.
	InsufficientFunds Kind = "insufficient_funds"
	// InvalidOperation marks an operation forbidden in the current state,
	// e.g. selling a property that is mid-renovation.
	InvalidOperation Kind = "invalid_operation"
	// DataIntegrity marks missing reference data or a corrupt save file.
	DataIntegrity Kind = "data_integrity"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return New(Validation, format, args...)
}

func InsufficientFundsf(format string, args ...any) *Error {
	return New(InsufficientFunds, format, args...)
}

func InvalidOperationf(format string, args ...any) *Error {
	return New(InvalidOperation, format, args...)
}

func DataIntegrityf(format string, args ...any) *Error {
	return New(DataIntegrity, format, args...)
}

// KindOf returns the fault kind carried by err, or "" when err is not a fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
