package errors

import (
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// Booking rejections. Caused by client input, reported verbatim to the
	// caller, never logged as system faults.
	ErrCodeInvalidDateFormat ErrorCode = "INVALID_DATE_FORMAT"
	ErrCodePastDate          ErrorCode = "PAST_DATE"
	ErrCodeInvalidTimeSlot   ErrorCode = "INVALID_TIME_SLOT"
	ErrCodeSlotAlreadyBooked ErrorCode = "SLOT_ALREADY_BOOKED"

	// Infrastructure and ambient codes.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest         ErrorCode = "BAD_REQUEST"
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code returns the error code for err, or empty if err is not an AppError.
func Code(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ""
}

// IsRejection reports whether err is a booking rejection caused by client
// input rather than an infrastructure fault.
func IsRejection(err error) bool {
	switch Code(err) {
	case ErrCodeInvalidDateFormat, ErrCodePastDate, ErrCodeInvalidTimeSlot, ErrCodeSlotAlreadyBooked:
		return true
	}
	return false
}

// IsStorageUnavailable checks if error is StorageUnavailable
func IsStorageUnavailable(err error) bool {
	return Code(err) == ErrCodeStorageUnavailable
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return Code(err) == ErrCodeUnauthorized
}
