package service

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

// ErrorCategory normalizes provider failures.
type ErrorCategory string

const (
	ErrorTimeout        ErrorCategory = "timeout"
	ErrorProviderOutage ErrorCategory = "provider_outage"
	ErrorRateLimited    ErrorCategory = "rate_limited"
	ErrorCircuitOpen    ErrorCategory = "circuit_open"
	ErrorRejected       ErrorCategory = "rejected"
	ErrorBadData        ErrorCategory = "bad_data"
)

// ProviderError wraps a failed provider call. It matches
// verification.ErrProviderUnavailable or verification.ErrProviderRejected
// under errors.Is depending on its category.
type ProviderError struct {
	Category   ErrorCategory
	Provider   string
	StatusCode int
	Message    string
	Underlying error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s [%s]", e.Provider, e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() []error {
	kind := verification.ErrProviderRejected
	if e.Retryable() || e.Category == ErrorCircuitOpen {
		kind = verification.ErrProviderUnavailable
	}
	if e.Underlying == nil {
		return []error{kind}
	}
	return []error{kind, e.Underlying}
}

// Retryable reports whether another attempt may succeed.
func (e *ProviderError) Retryable() bool {
	switch e.Category {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited:
		return true
	}
	return false
}

func newProviderError(category ErrorCategory, provider, message string, underlying error) *ProviderError {
	return &ProviderError{Category: category, Provider: provider, Message: message, Underlying: underlying}
}

// Category extracts the category of a provider failure, "" for other errors.
func Category(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ""
}
