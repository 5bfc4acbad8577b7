// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Bookscout.

It provides a rich error type that bridges the gap between low-level upstream,
extraction and storage failures and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Taxonomy: VALIDATION_ERROR, NOT_FOUND, UPSTREAM_ERROR, PARSING_ERROR, RATE_LIMITED.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be an [AppError]; anything else
is reported as PARSING_ERROR by [respond.Error].
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeUpstream    = "UPSTREAM_ERROR"
	CodeParsing     = "PARSING_ERROR"
	CodeRateLimited = "RATE_LIMITED"
)

// AppError is the canonical error type for the Bookscout API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., upstream hostnames).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details carries optional diagnostics (field errors, upstream status code).
	Details any `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the request parameter that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// UpstreamDetails describes the upstream response that triggered an UPSTREAM_ERROR.
type UpstreamDetails struct {
	StatusCode int `json:"statusCode,omitempty"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Book details") // Returns "Book details not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	appError := &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
	if len(details) > 0 {
		appError.Details = details
	}
	return appError
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Upstream creates a 502 [AppError] for a failed call to the catalog site.
//
// A zero statusCode means the request never produced a response (timeout,
// connection reset, DNS failure); the cause is kept for logging.
func Upstream(statusCode int, cause error) *AppError {
	appError := &AppError{
		Code:       CodeUpstream,
		Message:    "Catalog request failed",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
	if statusCode > 0 {
		appError.Message = fmt.Sprintf("Catalog responded with status %d", statusCode)
		appError.Details = UpstreamDetails{StatusCode: statusCode}
	}
	return appError
}

// Parsing creates a 500 [AppError] wrapping an unexpected failure.
// The cause is stored for logging but is never sent to the client.
func Parsing(cause error) *AppError {
	return &AppError{
		Code:       CodeParsing,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err's chain contains an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
