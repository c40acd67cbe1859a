package service

import (
	"context"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

type IdentityServiceInterface interface {
	VerifyPAN(ctx context.Context, pan string) (verification.Payload, error)
	SendAadhaarOTP(ctx context.Context, aadhaarNo string) (verification.Payload, error)
	VerifyAadhaarOTP(ctx context.Context, referenceID, otp string) (verification.Payload, error)
}

type IdentityService struct {
	api *VerificationAPI
}

func NewIdentityService(api *VerificationAPI) *IdentityService {
	return &IdentityService{api: api}
}

func (s *IdentityService) VerifyPAN(ctx context.Context, pan string) (verification.Payload, error) {
	if err := requireField("pan", "pan number", pan); err != nil {
		return nil, err
	}
	return s.api.post(ctx, "pan", "/pan/verify", map[string]string{"pan": pan})
}

// SendAadhaarOTP asks the provider to text an OTP to the Aadhaar holder. The
// response carries the reference id needed by VerifyAadhaarOTP.
func (s *IdentityService) SendAadhaarOTP(ctx context.Context, aadhaarNo string) (verification.Payload, error) {
	if err := requireField("aadhaar", "aadhaar number", aadhaarNo); err != nil {
		return nil, err
	}
	return s.api.post(ctx, "aadhaar", "/aadhaar/otp", map[string]string{"aadhaar_number": aadhaarNo})
}

func (s *IdentityService) VerifyAadhaarOTP(ctx context.Context, referenceID, otp string) (verification.Payload, error) {
	if err := requireField("aadhaar", "reference id", referenceID); err != nil {
		return nil, err
	}
	if err := requireField("aadhaar", "otp", otp); err != nil {
		return nil, err
	}
	return s.api.post(ctx, "aadhaar", "/aadhaar/verify", map[string]string{
		"reference_id": referenceID,
		"otp":          otp,
	})
}
