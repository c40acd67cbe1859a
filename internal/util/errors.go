package util

import (
	"errors"

	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrDuplicateEmail   = errors.New("candidate with this email already exists")
	ErrOTPNotRequested  = errors.New("no pending aadhaar otp for candidate")
	ErrAadhaarMismatch  = errors.New("aadhaar number does not match the otp request")
	ErrInvalidRequestID = errors.New("invalid id")
)

// StatusFromError maps domain errors onto HTTP status codes.
func StatusFromError(err error) int {
	var formErr *FormError
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &formErr), errors.Is(err, ErrInvalidRequestID), errors.Is(err, verification.ErrUnknownCheck):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrCompanyNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, verification.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, ErrOTPNotRequested), errors.Is(err, ErrAadhaarMismatch),
		errors.Is(err, verification.ErrMissingInput), errors.Is(err, verification.ErrProviderRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, verification.ErrProviderUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
