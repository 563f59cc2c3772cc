package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrLookup        = errors.New("lookup failed")

	// ErrPortalLocked is returned when portal content is requested by a
	// browser whose access state is not authorized.
	ErrPortalLocked = fmt.Errorf("investor portal locked: %w", ErrForbidden)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AuthReason classifies an AuthError.
type AuthReason string

const (
	AuthReasonInvalidCredentials   AuthReason = "invalid_credentials"
	AuthReasonRegistrationRejected AuthReason = "registration_rejected"
	AuthReasonEmailTaken           AuthReason = "email_taken"
	AuthReasonNoSession            AuthReason = "no_session"
)

// AuthError is an authentication failure the user can act on: wrong
// credentials, a sign-in blocked by a rejected registration or a duplicate
// email on sign-up. It is never fatal.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %s", e.Reason, e.Message)
}

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// NewAuthError creates an AuthError carrying the canonical message for reason.
func NewAuthError(reason AuthReason) *AuthError {
	return &AuthError{Reason: reason, Message: authMessage(reason)}
}

func authMessage(reason AuthReason) string {
	switch reason {
	case AuthReasonInvalidCredentials:
		return MsgInvalidCredentials
	case AuthReasonRegistrationRejected:
		return MsgRegistrationRejected
	case AuthReasonEmailTaken:
		return MsgEmailTaken
	case AuthReasonNoSession:
		return MsgSignInRequired
	}
	return MsgGenericAuth
}

// AuthorizationError is returned when an admin-only operation is attempted
// by an identity without the admin role.
type AuthorizationError struct {
	Op string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: admin role required", e.Op)
}

func (e *AuthorizationError) Unwrap() error { return ErrForbidden }

// LookupError wraps a transient or remote failure while resolving status or
// fetching documents, registrations or users. Callers fall back to a safe
// default and surface the error state.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: lookup failed: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() []error { return []error{ErrLookup, e.Err} }

// NewLookupError wraps err as a LookupError for op. A nil err yields nil.
func NewLookupError(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *LookupError
	if errors.As(err, &le) {
		return err
	}
	return &LookupError{Op: op, Err: err}
}

// UserMessage converts any error into a message that can be shown to a
// user. Internal details never leak through it.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if len(valErr.Errors) == 1 {
			return valErr.Errors[0].Field + ": " + valErr.Errors[0].Message
		}
		return MsgInvalidInput
	}

	switch {
	case errors.Is(err, ErrPortalLocked):
		return MsgPortalLocked
	case errors.Is(err, ErrForbidden):
		return MsgAdminRequired
	case errors.Is(err, ErrUnauthorized):
		return MsgSignInRequired
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, ErrConflict):
		return MsgConflict
	case errors.Is(err, ErrLookup):
		return MsgTemporarilyUnavailable
	}
	return MsgUnexpected
}
