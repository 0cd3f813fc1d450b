package domain

import "errors"

// Common business errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("user account is disabled")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNoEmployeeContext   = errors.New("no employee record for authenticated user")
	ErrSerialConflict      = errors.New("serial number conflict")
	ErrConstraintViolation = errors.New("storage constraint violation")
	ErrInternalError       = errors.New("internal error")
)

// AppError carries an HTTP status code alongside a user-facing message.
// The wrapped error is for logs only and must never reach the response body.
type AppError struct {
	Code    int    // HTTP status code
	Message string // user-facing error message
	Err     error  // original error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Convenience constructors for the common cases.
func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: 404, Message: msg, Err: ErrNotFound}
}

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Err: ErrInvalidInput}
}

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: 401, Message: msg, Err: ErrUnauthorized}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: 403, Message: msg, Err: ErrForbidden}
}

func NewConflictError(msg string, err error) *AppError {
	return &AppError{Code: 409, Message: msg, Err: err}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Code: 500, Message: msg, Err: err}
}
