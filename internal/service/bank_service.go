package service

import (
	"context"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

type BankQuery struct {
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	Name          string `json:"name,omitempty"`
}

type BankServiceInterface interface {
	VerifyAccount(ctx context.Context, q BankQuery) (verification.Payload, error)
}

type BankService struct {
	api *VerificationAPI
}

func NewBankService(api *VerificationAPI) *BankService {
	return &BankService{api: api}
}

// VerifyAccount runs a penny-drop verification of the account.
func (s *BankService) VerifyAccount(ctx context.Context, q BankQuery) (verification.Payload, error) {
	if err := requireField("bank", "account number", q.AccountNumber); err != nil {
		return nil, err
	}
	if err := requireField("bank", "ifsc", q.IFSC); err != nil {
		return nil, err
	}
	return s.api.post(ctx, "bank", "/bank/verify", q)
}
