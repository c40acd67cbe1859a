package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/verification"
)

// Keys under which raw provider payloads are stored in a report's apis map.
const (
	apiPAN               = "pan"
	apiUANLookup         = "uan_lookup"
	apiEmploymentHistory = "employment_history"
	apiCourtSearch       = "court_search"
	apiAML               = "aml"
	apiBankAccount       = "bank_account"
)

func missing(what string) error {
	return fmt.Errorf("%s: %w", what, verification.ErrMissingInput)
}

func (uc *VerificationUsecase) checkIdentity(ctx context.Context, c *model.Candidate) verification.Outcome {
	pan := ""
	if c.Nid != nil {
		pan = strings.TrimSpace(c.Nid.PANNo)
	}
	aadhaarVerified := c.AadharDetails != nil && strings.TrimSpace(c.AadharDetails.Name) != ""
	if pan == "" && !aadhaarVerified {
		return verification.Skipped(verification.CheckIdentity, missing("no pan number or verified aadhaar details"))
	}

	apis := map[string]verification.Payload{}
	var panPayload verification.Payload
	if pan != "" {
		p, err := uc.services.Identity.VerifyPAN(ctx, pan)
		if err != nil {
			return verification.OutcomeFromError(verification.CheckIdentity, err)
		}
		panPayload = p
		apis[apiPAN] = p
	}
	return verification.Succeeded(verification.CheckIdentity, apis, verification.EvaluateIdentity(panPayload, aadhaarVerified))
}

func (uc *VerificationUsecase) checkEmployment(ctx context.Context, c *model.Candidate) verification.Outcome {
	apis := map[string]verification.Payload{}
	uan := strings.TrimSpace(c.UAN)
	resolved := ""
	if uan == "" {
		aadhaar := ""
		if c.Nid != nil {
			aadhaar = strings.TrimSpace(c.Nid.AadharNo)
		}
		if aadhaar == "" {
			return verification.Skipped(verification.CheckEmployment, missing("no uan or aadhaar number"))
		}
		found, lookup, err := uc.services.Employment.UANFromAadhaar(ctx, aadhaar)
		if err != nil {
			return verification.OutcomeFromError(verification.CheckEmployment, err)
		}
		if found == "" {
			return verification.Skipped(verification.CheckEmployment, missing("no uan linked to aadhaar number"))
		}
		apis[apiUANLookup] = lookup
		uan, resolved = found, found
	}

	history, err := uc.services.Employment.EmploymentHistory(ctx, uan)
	if err != nil {
		return verification.OutcomeFromError(verification.CheckEmployment, err)
	}
	apis[apiEmploymentHistory] = history

	out := verification.Succeeded(verification.CheckEmployment, apis, verification.EvaluateEmployment(uan, history))
	out.ResolvedUAN = resolved
	return out
}

func (uc *VerificationUsecase) checkCourt(ctx context.Context, c *model.Candidate) verification.Outcome {
	name := c.FullName()
	if name == "" {
		return verification.Skipped(verification.CheckCourt, missing("no candidate name"))
	}
	address := strings.TrimSpace(c.AadharAddress)
	if address == "" {
		if current := c.CurrentAddress(); current != nil {
			address = current.Line()
		}
	}
	q := service.CourtQuery{Name: name, FatherName: c.FatherName, Address: address}
	if c.DOB != nil {
		q.DOB = c.DOB.Format("2006-01-02")
	}

	p, err := uc.services.Court.Search(ctx, q)
	if err != nil {
		return verification.OutcomeFromError(verification.CheckCourt, err)
	}
	return verification.Succeeded(verification.CheckCourt,
		map[string]verification.Payload{apiCourtSearch: p},
		verification.EvaluateCourt(p))
}

func (uc *VerificationUsecase) checkAML(ctx context.Context, c *model.Candidate) verification.Outcome {
	name := c.FullName()
	if name == "" {
		return verification.Skipped(verification.CheckAML, missing("no candidate name"))
	}
	p, err := uc.services.AML.Screen(ctx, service.AMLQuery{
		Name:    name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.AadharAddress,
	})
	if err != nil {
		return verification.OutcomeFromError(verification.CheckAML, err)
	}
	return verification.Succeeded(verification.CheckAML,
		map[string]verification.Payload{apiAML: p},
		verification.EvaluateAML(p))
}

func (uc *VerificationUsecase) checkBank(ctx context.Context, c *model.Candidate) verification.Outcome {
	account := c.BankAccount
	if account == nil || strings.TrimSpace(account.AccountNo) == "" || strings.TrimSpace(account.IFSC) == "" {
		return verification.Skipped(verification.CheckBankAccount, missing("no bank account on file"))
	}
	p, err := uc.services.Bank.VerifyAccount(ctx, service.BankQuery{
		AccountNumber: strings.TrimSpace(account.AccountNo),
		IFSC:          strings.ToUpper(strings.TrimSpace(account.IFSC)),
		Name:          account.Name,
	})
	if err != nil {
		return verification.OutcomeFromError(verification.CheckBankAccount, err)
	}
	out := verification.Succeeded(verification.CheckBankAccount,
		map[string]verification.Payload{apiBankAccount: p},
		verification.EvaluateBank(p))
	out.BeneficiaryName = verification.BeneficiaryName(p)
	return out
}
