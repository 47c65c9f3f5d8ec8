package billing

import (
	"errors"
	"fmt"
)

// Input validation errors; surfaced before any mutation occurs.
var (
	ErrEmptyBatch             = errors.New("el descargo debe incluir al menos una línea")
	ErrAmbiguousLineSelection = errors.New("cada línea debe tener solo servicio o producto, no ambos")
	ErrInvalidQuantity        = errors.New("cantidad debe ser mayor que cero")
)

// ErrNothingToInvoice means the patient has no unbilled consumption; a
// legitimate empty-result condition, not a system fault.
var ErrNothingToInvoice = errors.New("el paciente no tiene descargos para facturar")

// NotFoundError covers missing patients, clients, catalog items and invoices.
// Always surfaced to the caller unmodified, never retried.
type NotFoundError struct {
	Kind string // "paciente", "cliente", "servicio", "producto", "factura"
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con ID %d no encontrado", e.Kind, e.ID)
}

// InvalidTransitionError is a lifecycle policy violation: the attempted
// action is not legal for the patient's current status. Retrying without a
// status change would reproduce it.
type InvalidTransitionError struct {
	Action string
	Estado string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no se puede %s: paciente en estado %q", e.Action, e.Estado)
}

// OperationFailedError wraps an unexpected storage failure after the whole
// unit of work has been rolled back.
type OperationFailedError struct {
	Op    string
	Cause error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *OperationFailedError) Unwrap() error { return e.Cause }

// opFailed passes engine-level errors through untouched and wraps anything
// else (storage faults) as an OperationFailedError.
func opFailed(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		nf *NotFoundError
		it *InvalidTransitionError
		of *OperationFailedError
	)
	if errors.As(err, &nf) || errors.As(err, &it) || errors.As(err, &of) {
		return err
	}
	if errors.Is(err, ErrEmptyBatch) || errors.Is(err, ErrAmbiguousLineSelection) ||
		errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrNothingToInvoice) {
		return err
	}
	return &OperationFailedError{Op: op, Cause: err}
}
