// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"rate limit error type", &GeocodingError{Type: ErrorTypeRateLimit, Message: "rate limit exceeded"}, true},
		{"message contains rate limit", errors.New("rate limit exceeded"), true},
		{"message contains too many requests", errors.New("too many requests"), true},
		{"message contains 429", errors.New("provider returned status 429"), true},
		{"other error type", &GeocodingError{Type: ErrorTypeNotFound, Message: "not found"}, false},
		{"unrelated error", errors.New("some other error"), false},
	}, IsRateLimitError)
}

func TestIsQuotaExceededError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"quota error type", &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "quota"}, true},
		{"google status", errors.New("google maps status: OVER_QUERY_LIMIT"), true},
		{"message", errors.New("Quota exceeded for today"), true},
		{"other error type", &GeocodingError{Type: ErrorTypeTimeout, Message: "timeout"}, false},
		{"unrelated error", errors.New("boom"), false},
	}, IsQuotaExceededError)
}

func TestIsTimeoutError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"timeout error type", &GeocodingError{Type: ErrorTypeTimeout, Message: "timeout"}, true},
		{"wrapped deadline", fmt.Errorf("calling provider: %w", context.DeadlineExceeded), true},
		{"message", errors.New("i/o timeout"), true},
		{"other error type", &GeocodingError{Type: ErrorTypeNotFound, Message: "not found"}, false},
		{"unrelated error", errors.New("boom"), false},
	}, IsTimeoutError)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusForbidden, ErrorTypeQuotaExceeded},
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusBadGateway, ErrorTypeNetworkError},
		{http.StatusServiceUnavailable, ErrorTypeNetworkError},
		{http.StatusGatewayTimeout, ErrorTypeNetworkError},
		{http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := ClassifyHTTPError(tt.status).Type; got != tt.want {
				t.Errorf("ClassifyHTTPError(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestGeocodingErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := fmt.Errorf("resolving: %w", &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed", Err: inner})

	if !errors.Is(err, inner) {
		t.Errorf("errors.Is should find the wrapped cause")
	}

	if TypeOf(err) != ErrorTypeNetworkError {
		t.Errorf("TypeOf = %v, want %v", TypeOf(err), ErrorTypeNetworkError)
	}

	if got := TypeOf(errors.New("plain")); got != ErrorTypeUnknown {
		t.Errorf("TypeOf(plain) = %v, want unknown", got)
	}
}

func TestDisabledGeocoder(t *testing.T) {
	_, err := Disabled{Reason: "no API key"}.Geocode(context.Background(), "1 rue Principale")
	if err == nil {
		t.Fatal("expected an error")
	}

	if got := TypeOf(err); got != ErrorTypeInvalidRequest {
		t.Errorf("TypeOf() = %v, want %v", got, ErrorTypeInvalidRequest)
	}
}
