// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeocodingError describes why a provider could not produce coordinates.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeRateLimit
	ErrorTypeQuotaExceeded
	ErrorTypeTimeout
	ErrorTypeNotFound
	ErrorTypeInvalidRequest
	ErrorTypeNetworkError
	ErrorTypeInvalidResponse
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:         "unknown",
	ErrorTypeRateLimit:       "rate_limit",
	ErrorTypeQuotaExceeded:   "quota_exceeded",
	ErrorTypeTimeout:         "timeout",
	ErrorTypeNotFound:        "not_found",
	ErrorTypeInvalidRequest:  "invalid_request",
	ErrorTypeNetworkError:    "network",
	ErrorTypeInvalidResponse: "invalid_response",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type
	}

	return ErrorTypeUnknown
}

// IsRateLimitError reports whether err was caused by a rate limit.
func IsRateLimitError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether err was caused by an exhausted quota.
func IsQuotaExceededError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether err was caused by a timeout.
func IsTimeoutError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeTimeout
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non 200 provider response to a GeocodingError.
func ClassifyHTTPError(statusCode int) *GeocodingError {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound:
		return &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "address not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// ClassifyStatus maps a Google Maps response status to a GeocodingError.
func ClassifyStatus(status string) *GeocodingError {
	msg := "google maps status: " + status

	switch status {
	case "ZERO_RESULTS":
		return &GeocodingError{Type: ErrorTypeNotFound, Message: msg}
	case "OVER_QUERY_LIMIT":
		return &GeocodingError{Type: ErrorTypeRateLimit, Message: msg}
	case "OVER_DAILY_LIMIT", "REQUEST_DENIED":
		return &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: msg}
	case "INVALID_REQUEST":
		return &GeocodingError{Type: ErrorTypeInvalidRequest, Message: msg}
	default:
		return &GeocodingError{Type: ErrorTypeUnknown, Message: msg}
	}
}

// classifyTransportError wraps an error returned by the HTTP client or the
// rate limiter.
func classifyTransportError(err error) *GeocodingError {
	if IsTimeoutError(err) || errors.Is(err, context.Canceled) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "geocoding request timed out", Err: err}
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: "geocoding request failed", Err: err}
}
