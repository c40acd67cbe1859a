package verification

import "errors"

var (
	// ErrProviderUnavailable covers network failures, timeouts, 429 and 5xx answers.
	ErrProviderUnavailable = errors.New("verification provider unavailable")
	// ErrProviderRejected covers well-formed error answers and malformed payloads.
	ErrProviderRejected = errors.New("verification provider rejected request")
	// ErrMissingInput means the candidate lacks the data a check needs; the check is skipped.
	ErrMissingInput = errors.New("missing input for check")
	// ErrPersistenceFailure is returned when the pipeline could not commit its results.
	ErrPersistenceFailure = errors.New("failed to persist verification results")

	ErrInvalidTransition = errors.New("invalid verification status transition")
	ErrUnknownCheck      = errors.New("unknown check kind")
)
