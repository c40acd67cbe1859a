package service

import (
	"context"
	"strings"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

type AMLQuery struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type AMLServiceInterface interface {
	Screen(ctx context.Context, q AMLQuery) (verification.Payload, error)
}

type AMLService struct {
	api *VerificationAPI
}

func NewAMLService(api *VerificationAPI) *AMLService {
	return &AMLService{api: api}
}

func (s *AMLService) Screen(ctx context.Context, q AMLQuery) (verification.Payload, error) {
	if err := requireField("aml", "name", strings.TrimSpace(q.Name)); err != nil {
		return nil, err
	}
	return s.api.post(ctx, "aml", "/aml/screen", q)
}
