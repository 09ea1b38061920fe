package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Statement errors
	ErrStatementNotFound  = errors.New("statement not found")
	ErrDuplicateStatement = errors.New("a statement for this bank and month already exists")
	ErrNotReconciled      = errors.New("statement is not reconciled")
	ErrCopyForwardUsed    = errors.New("copy-forward already applied for this bank and date")
	ErrNoPredecessor      = errors.New("no statement for the previous month")
	ErrEditMode           = errors.New("operation is only available when creating a statement")

	// Bank errors
	ErrBankNotFound    = errors.New("bank not found")
	ErrBankCodeExists  = errors.New("bank code already exists")
	ErrUnknownBankCode = errors.New("unknown bank code")

	// Settings errors
	ErrSettingsNotFound = errors.New("settings not found")

	// Input errors
	ErrValidation  = errors.New("validation failed")
	ErrInvalidDate = errors.New("invalid date")

	// Store errors
	ErrPersistence = errors.New("persistence failure")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects the field errors of a rejected input.
type ValidationError struct {
	Fields []FieldError
}

// Add records a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e when it has errors, otherwise nil.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DuplicateConflictError reports the statement that already covers the
// requested bank and month.
type DuplicateConflictError struct {
	ID          string
	StatementID int64
	BankCode    string
	Period      Period
}

func (e *DuplicateConflictError) Error() string {
	return fmt.Sprintf("%s: statement #%d (%s %s)", ErrDuplicateStatement, e.StatementID, e.BankCode, e.Period)
}

func (e *DuplicateConflictError) Unwrap() error {
	return ErrDuplicateStatement
}

// PersistenceError wraps a store failure with the operation that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError unless it is nil or already a
// domain condition the caller should see verbatim.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStatementNotFound) || errors.Is(err, ErrBankNotFound) ||
		errors.Is(err, ErrBankCodeExists) || errors.Is(err, ErrSettingsNotFound) ||
		errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
