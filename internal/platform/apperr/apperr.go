// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error taxonomy shared by every layer of the reader backend.

Services return [*AppError] values (or wrap them) and the HTTP boundary turns
them into the JSON error envelope without inspecting storage details.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes carried in the error envelope.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// genericMessage hides server-side failures from clients.
const genericMessage = "An unexpected error occurred"

// AppError is a client-safe error with an HTTP status.
// Cause is logged server-side and never serialised.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`

	// RetryAfter is sent as the Retry-After header when positive.
	RetryAfter int `json:"-"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code string, status int, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound builds the sentinel for a missing resource, e.g.
//
//	var ErrSeriesNotFound = apperr.NotFound("Series") // "Series not found"
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, http.StatusNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(CodeForbidden, http.StatusForbidden, message)
}

// Conflict reports a unique-constraint collision such as a duplicate slug.
func Conflict(message string) *AppError {
	return newError(CodeConflict, http.StatusConflict, message)
}

// ValidationError reports malformed input with optional per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(CodeValidation, http.StatusBadRequest, message)
	err.Details = details
	return err
}

// RateLimited tells the client how long to back off.
func RateLimited(retryAfterSeconds int) *AppError {
	err := newError(CodeRateLimited, http.StatusTooManyRequests,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
	err.RetryAfter = retryAfterSeconds
	return err
}

// # 5xx

// Internal wraps an unexpected failure. The cause is kept for logs only.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, http.StatusInternalServerError, genericMessage)
	err.Cause = cause
	return err
}

// StoreUnavailable wraps a failed persistence call. It is never retried.
func StoreUnavailable(action string, cause error) *AppError {
	err := newError(CodeStoreUnavailable, http.StatusInternalServerError, genericMessage)
	err.Cause = fmt.Errorf("%s: %w", action, cause)
	return err
}

// # Helpers

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool { return As(err) != nil }

// IsNotFound reports whether err's chain holds a NOT_FOUND error.
func IsNotFound(err error) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == CodeNotFound
}
