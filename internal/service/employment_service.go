package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

type EmploymentServiceInterface interface {
	// UANFromAadhaar resolves the provident fund account number linked to an
	// Aadhaar number. An empty uan with a nil error means none is linked.
	UANFromAadhaar(ctx context.Context, aadhaarNo string) (uan string, payload verification.Payload, err error)
	EmploymentHistory(ctx context.Context, uan string) (verification.Payload, error)
}

type EmploymentService struct {
	api *VerificationAPI
}

func NewEmploymentService(api *VerificationAPI) *EmploymentService {
	return &EmploymentService{api: api}
}

func (s *EmploymentService) UANFromAadhaar(ctx context.Context, aadhaarNo string) (string, verification.Payload, error) {
	if err := requireField("uan", "aadhaar number", aadhaarNo); err != nil {
		return "", nil, err
	}
	payload, err := s.api.post(ctx, "uan", "/uan/from-aadhaar", map[string]string{"aadhaar_number": aadhaarNo})
	if err != nil {
		return "", nil, err
	}
	for _, path := range []string{"uan", "data.uan", "result.uan", "uan_list.0"} {
		if r := payload.Get(path); r.Exists() && r.String() != "" {
			return r.String(), payload, nil
		}
	}
	return "", payload, nil
}

func (s *EmploymentService) EmploymentHistory(ctx context.Context, uan string) (verification.Payload, error) {
	if err := requireField("employment", "uan", uan); err != nil {
		return nil, err
	}
	payload, err := s.api.post(ctx, "employment", "/employment/history", map[string]string{"uan": uan})
	if err != nil {
		return nil, fmt.Errorf("employment history: %w", err)
	}
	return payload, nil
}
