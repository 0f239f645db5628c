package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrValidationFailed = errors.New("Validation failed")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidJSON      = errors.New("invalid JSON")
	ErrPayloadTooLarge  = errors.New("request body too large")
)

// Admin capability errors
var (
	ErrMissingToken  = errors.New("missing admin token")
	ErrInvalidToken  = errors.New("invalid admin token")
	ErrWrongPassword = errors.New("incorrect password")
)

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError reports a ValidationFailed with one message per invalid field.
func NewValidationError(fields []FieldError) *ApiErr {
	e := &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidationFailed,
		Fields:     fields,
	}
	if len(fields) == 1 {
		e.Field = fields[0].Field
	}
	return e
}

func NewInvalidJSONError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidJSON,
		Details:    "Invalid JSON format",
		Cause:      cause,
		Field:      "json",
	}
}

func NewPayloadTooLargeError(limit int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusRequestEntityTooLarge,
		err:        ErrPayloadTooLarge,
		Details:    fmt.Sprintf("Request body must not exceed %d bytes", limit),
	}
}

// NewInvalidIDError is returned when a path id is not ^\d+$ shaped.
func NewInvalidIDError(param string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        withKind(ErrInvalidID, "Invalid %s", param),
		Details:    fmt.Sprintf("%s must be a positive integer", param),
		Field:      param,
	}
}

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Admin mode is locked",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Admin token is invalid or expired",
		Field:      "authorization",
	}
}

func NewWrongPasswordError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrWrongPassword,
		Field:      "password",
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

func IsInvalidIDError(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrMissingToken)
}
