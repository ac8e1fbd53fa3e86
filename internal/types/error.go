package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// 5XX
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	StakeError           ErrorCode = "STAKE_ERROR"
	TransferError        ErrorCode = "TRANSFER_ERROR"
	// 4XX
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Forbidden            ErrorCode = "FORBIDDEN"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
	TooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	InvalidAmount        ErrorCode = "INVALID_AMOUNT"
	InsufficientBalance  ErrorCode = "INSUFFICIENT_BALANCE"
	UnfundedDeposit      ErrorCode = "UNFUNDED_DEPOSIT"
	Uninitialized        ErrorCode = "UNINITIALIZED"
	AlreadyInitialized   ErrorCode = "ALREADY_INITIALIZED"
	MissingCaller        ErrorCode = "MISSING_CALLER"
	InvalidPaginationKey ErrorCode = "INVALID_PAGINATION_KEY"
)

// Error represents an error with an HTTP status code and an application-specific error code.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

const UninitializedStatusCode = 0

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the provided status code, error code, and underlying error.
// If the status code is not provided (0), it defaults to http.StatusInternalServerError(500).
// If the error code is empty, it defaults to INTERNAL_SERVICE_ERROR.
func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	if statusCode == UninitializedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	if errorCode == "" {
		errorCode = InternalServiceError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}
