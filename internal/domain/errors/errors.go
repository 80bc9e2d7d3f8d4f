package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrBadRequest              = errors.New("bad request")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTokenExpired            = errors.New("token expired")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrWeakPassword            = errors.New("password must be 6 to 72 characters and contain a letter and a digit")
	ErrReservedDomain          = errors.New("email domain not allowed for this role")
	ErrEmailNotVerified        = errors.New("email not verified")
	ErrIDNotVerified           = errors.New("identity document not verified")
	ErrAccountPendingApproval  = errors.New("account pending admin approval")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrInvalidRating           = errors.New("rating must be between 1 and 5")
	ErrSelfReview              = errors.New("users cannot review themselves")
	ErrNoInteraction           = errors.New("reviewer has not contacted this user")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrVerificationCodeExpired = errors.New("verification code expired")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file too large")
)

// Stable error codes returned to API clients
const (
	CodeNotFound                = "NOT_FOUND"
	CodeConflict                = "CONFLICT"
	CodeInvalidInput            = "INVALID_INPUT"
	CodeBadRequest              = "BAD_REQUEST"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeInternalError           = "INTERNAL_ERROR"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeDuplicateEmail          = "DUPLICATE_EMAIL"
	CodeInvalidEmailFormat      = "INVALID_EMAIL_FORMAT"
	CodeWeakPassword            = "WEAK_PASSWORD"
	CodeReservedDomain          = "RESERVED_DOMAIN_VIOLATION"
	CodeEmailNotVerified        = "EMAIL_NOT_VERIFIED"
	CodeIDNotVerified           = "ID_NOT_VERIFIED"
	CodeAccountPendingApproval  = "ACCOUNT_PENDING_APPROVAL"
	CodePermissionDenied        = "PERMISSION_DENIED"
	CodeInvalidRating           = "INVALID_RATING"
	CodeSelfReview              = "SELF_REVIEW"
	CodeNoInteraction           = "NO_INTERACTION"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInvalidVerificationCode = "INVALID_VERIFICATION_CODE"
	CodeVerificationCodeExpired = "VERIFICATION_CODE_EXPIRED"
	CodeUnsupportedFileType     = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge            = "FILE_TOO_LARGE"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

type mapping struct {
	err    error
	status int
	code   string
}

// Order matters only for sentinels that wrap each other; none currently do.
var mappings = []mapping{
	{ErrNotFound, http.StatusNotFound, CodeNotFound},
	{ErrAlreadyExists, http.StatusConflict, CodeConflict},
	{ErrDuplicateEmail, http.StatusConflict, CodeDuplicateEmail},
	{ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
	{ErrBadRequest, http.StatusBadRequest, CodeBadRequest},
	{ErrInvalidEmailFormat, http.StatusBadRequest, CodeInvalidEmailFormat},
	{ErrWeakPassword, http.StatusBadRequest, CodeWeakPassword},
	{ErrReservedDomain, http.StatusBadRequest, CodeReservedDomain},
	{ErrInvalidRating, http.StatusBadRequest, CodeInvalidRating},
	{ErrSelfReview, http.StatusBadRequest, CodeSelfReview},
	{ErrInvalidVerificationCode, http.StatusBadRequest, CodeInvalidVerificationCode},
	{ErrVerificationCodeExpired, http.StatusBadRequest, CodeVerificationCodeExpired},
	{ErrUnsupportedFileType, http.StatusBadRequest, CodeUnsupportedFileType},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge, CodeFileTooLarge},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
	{ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
	{ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired},
	{ErrForbidden, http.StatusForbidden, CodeForbidden},
	{ErrEmailNotVerified, http.StatusForbidden, CodeEmailNotVerified},
	{ErrIDNotVerified, http.StatusForbidden, CodeIDNotVerified},
	{ErrAccountPendingApproval, http.StatusForbidden, CodeAccountPendingApproval},
	{ErrPermissionDenied, http.StatusForbidden, CodePermissionDenied},
	{ErrNoInteraction, http.StatusForbidden, CodeNoInteraction},
	{ErrInvalidStatusTransition, http.StatusConflict, CodeInvalidStatusTransition},
}

// FromError converts err into an AppError. AppErrors pass through, known
// domain sentinels get their status and code, anything else is a 500.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewAppError(m.status, m.code, err.Error(), err)
		}
	}
	return InternalError(err)
}
