// Package resilience provides retry with exponential backoff and the
// error taxonomy shared by the generation clients.
package resilience

import (
	"errors"
	"strings"
)

// RateLimitError wraps an upstream rate-limit rejection (HTTP 429 or a
// provider-specific quota error). It is the only error class the
// generation layer retries.
type RateLimitError struct {
	Err        error
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps an error as a rate limit with an optional
// HTTP status code.
func NewRateLimitError(err error, statusCode int) *RateLimitError {
	return &RateLimitError{Err: err, StatusCode: statusCode}
}

// rateLimitIndicators are provider error-text fragments that signal a
// quota rejection even when the error is not typed.
var rateLimitIndicators = []string{
	"429",
	"request_quota_exceeded",
	"too_many_requests",
	"rate limit",
}

// IsRateLimited returns true if the error (or any error in its chain)
// is a RateLimitError, or if its text matches a known rate-limit
// indicator.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, ind := range rateLimitIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}
