// Package errors provides the typed error values returned by the ledger.
// Services return *AppError for every domain-rule violation so callers can
// branch on Code or Kind; driver failures are wrapped in ErrInternalServer
// and never leak their details to clients.
package errors

import (
	"errors"
	"net/http"
)

// Kind groups error codes by how the presentation layer should react.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindDuplicateLogin
	KindReferentialIntegrity
	KindConnection
	KindTransaction
	KindNotFound
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindDuplicateLogin:
		return "duplicate_login"
	case KindReferentialIntegrity:
		return "referential_integrity"
	case KindConnection:
		return "connection"
	case KindTransaction:
		return "transaction"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}

// AppError represents a structured application error with an error code,
// human-readable message, kind, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so a wrapped
// copy still matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// KindOf returns the Kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", Kind: KindAuthentication, StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid login or password", Kind: KindAuthentication, StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput      = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", Kind: KindInvalidInput, StatusCode: http.StatusBadRequest}
	ErrInvalidTransition = &AppError{Code: "INVALID_TRANSITION", Message: "Navigation not allowed from the current screen", Kind: KindInvalidInput, StatusCode: http.StatusConflict}
	ErrInternalServer    = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", Kind: KindInternal, StatusCode: http.StatusInternalServerError}
)

// Infrastructure errors.
var (
	ErrConnectionFailed  = &AppError{Code: "CONNECTION_FAILED", Message: "Unable to connect to the database", Kind: KindConnection, StatusCode: http.StatusServiceUnavailable}
	ErrTransactionFailed = &AppError{Code: "TRANSACTION_FAILED", Message: "The operation was rolled back", Kind: KindTransaction, StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrDuplicateLogin = &AppError{Code: "DUPLICATE_LOGIN", Message: "This login is already taken", Kind: KindDuplicateLogin, StatusCode: http.StatusConflict}
)

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
)

// Reference data errors.
var (
	ErrEstablishmentNotFound = &AppError{Code: "ESTABLISHMENT_NOT_FOUND", Message: "Establishment not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrEstablishmentInUse    = &AppError{Code: "ESTABLISHMENT_IN_USE", Message: "Establishment is used by existing accounts", Kind: KindReferentialIntegrity, StatusCode: http.StatusConflict}
	ErrAccountTypeNotFound   = &AppError{Code: "ACCOUNT_TYPE_NOT_FOUND", Message: "Account type not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrAccountTypeInUse      = &AppError{Code: "ACCOUNT_TYPE_IN_USE", Message: "Account type is used by existing accounts", Kind: KindReferentialIntegrity, StatusCode: http.StatusConflict}
	ErrCategoryNotFound      = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrCategoryInUse         = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing operations", Kind: KindReferentialIntegrity, StatusCode: http.StatusConflict}
)

// Operation errors.
var (
	ErrOperationNotFound = &AppError{Code: "OPERATION_NOT_FOUND", Message: "Operation not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
)
