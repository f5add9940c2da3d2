package services

import "errors"

// ServiceError is an error kind shared by every service. Handlers branch on
// kinds with errors.Is and show the wrapped DomainError message to users.
type ServiceError string

func (e ServiceError) Error() string { return string(e) }

const (
	ErrValidation        ServiceError = "validation failed"
	ErrDuplicateKey      ServiceError = "duplicate key"
	ErrNotFound          ServiceError = "not found"
	ErrInvalidStatus     ServiceError = "invalid status"
	ErrInvalidTransition ServiceError = "invalid status transition"
	ErrAuthentication    ServiceError = "authentication failed"
)

// DomainError is a user-presentable error belonging to one ServiceError kind.
type DomainError struct {
	Kind    ServiceError
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Kind }

func newDomainError(kind ServiceError, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

var (
	ErrPasswordMismatch    = newDomainError(ErrValidation, "Passwords do not match.")
	ErrDuplicateIdentity   = newDomainError(ErrDuplicateKey, "NRC number already registered.")
	ErrDuplicateEmail      = newDomainError(ErrDuplicateKey, "Email already registered.")
	ErrPatientNotFound     = newDomainError(ErrNotFound, "Patient not found.")
	ErrEmailNotFound       = newDomainError(ErrNotFound, "Email not found.")
	ErrAppointmentNotFound = newDomainError(ErrNotFound, "No appointment found.")
	ErrInvalidCredential   = newDomainError(ErrAuthentication, "Incorrect password.")
	ErrUnknownStatus       = newDomainError(ErrInvalidStatus, "Invalid status.")
	ErrOnlyPendingCancel   = newDomainError(ErrInvalidTransition, "Only pending appointments can be cancelled.")
)

// UserMessage returns the message to flash for err, or fallback when err
// carries no user-facing text.
func UserMessage(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
