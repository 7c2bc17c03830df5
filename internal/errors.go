package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidEnum          ErrorCode = "INVALID_ENUM"
	ErrCodeUnresolvedReference  ErrorCode = "UNRESOLVED_REFERENCE"
	ErrCodeDuplicateIdentifier  ErrorCode = "DUPLICATE_IDENTIFIER"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"

	ErrCodeAssetNotFound      ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeDepartmentNotFound ErrorCode = "DEPARTMENT_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAdminRequired      ErrorCode = "ADMIN_REQUIRED"
	ErrCodeAccountInactive    ErrorCode = "ACCOUNT_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeOtpExpired       ErrorCode = "OTP_EXPIRED"
	ErrCodeOtpInvalid       ErrorCode = "OTP_INVALID"
	ErrCodeEmailNotVerified ErrorCode = "EMAIL_NOT_VERIFIED"

	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeUploadRejected ErrorCode = "UPLOAD_REJECTED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

// NewMissingFieldError reports the first missing required field by its
// wire name, e.g. MissingRequiredField("employeeId").
func NewMissingFieldError(field string) *AppError {
	return NewValidationFieldError(field, fmt.Sprintf("%s is required", field), ErrCodeMissingRequiredField)
}

func NewInvalidEnumError(field string, allowed ...string) *AppError {
	msg := fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
	return NewValidationFieldError(field, msg, ErrCodeInvalidEnum)
}

func NewUnresolvedReferenceError(field, value string) *AppError {
	msg := fmt.Sprintf("%s does not reference an existing record: %s", field, value)
	return NewValidationFieldError(field, msg, ErrCodeUnresolvedReference)
}

// NewDuplicateIdentifierError is a validation failure (HTTP 400), not a
// conflict: duplicate identifiers are caller errors in this API.
func NewDuplicateIdentifierError(field, value string) *AppError {
	msg := fmt.Sprintf("%s already exists: %s", field, value)
	return NewValidationFieldError(field, msg, ErrCodeDuplicateIdentifier)
}

func NewInvalidTransitionError(from, to string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeInvalidTransition,
		Message:    fmt.Sprintf("cannot transition status from %q to %q", from, to),
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewStorageError wraps an underlying persistence failure. The core never
// retries; callers may retry transient failures at their discretion.
func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStorageFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewUploadRejectedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeUploadRejected,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

var (
	ErrAssetNotFound      = NewNotFoundError("asset not found", ErrCodeAssetNotFound)
	ErrDepartmentNotFound = NewNotFoundError("department not found", ErrCodeDepartmentNotFound)

	// ErrInvalidCredentials is deliberately identical for an unknown
	// principal and a wrong password, to avoid existence disclosure.
	ErrInvalidCredentials = NewUnauthorizedError("invalid credentials", ErrCodeInvalidCredentials)
	ErrAccountInactive    = NewForbiddenError("account is inactive", ErrCodeAccountInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)

	ErrOtpExpired = NewValidationError("verification code has expired, request a new one", ErrCodeOtpExpired)
	ErrOtpInvalid = NewValidationError("verification code is invalid", ErrCodeOtpInvalid)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
