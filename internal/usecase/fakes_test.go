package usecase

import (
	"context"
	"sync/atomic"

	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/verification"
)

// Fake providers answer with a clean result unless a hook is set. Every call
// is counted so tests can assert that nothing was called.
type fakeIdentity struct {
	verifyPAN func(pan string) (verification.Payload, error)
	sendOTP   func(aadhaarNo string) (verification.Payload, error)
	verifyOTP func(referenceID, otp string) (verification.Payload, error)
	calls     atomic.Int32
}

func (f *fakeIdentity) VerifyPAN(_ context.Context, pan string) (verification.Payload, error) {
	f.calls.Add(1)
	if f.verifyPAN != nil {
		return f.verifyPAN(pan)
	}
	return verification.Payload(`{"status":1,"name":"ASHA RAO","pan":"` + pan + `"}`), nil
}

func (f *fakeIdentity) SendAadhaarOTP(_ context.Context, aadhaarNo string) (verification.Payload, error) {
	f.calls.Add(1)
	if f.sendOTP != nil {
		return f.sendOTP(aadhaarNo)
	}
	return verification.Payload(`{"reference_id":"ref-1","message":"OTP sent"}`), nil
}

func (f *fakeIdentity) VerifyAadhaarOTP(_ context.Context, referenceID, otp string) (verification.Payload, error) {
	f.calls.Add(1)
	if f.verifyOTP != nil {
		return f.verifyOTP(referenceID, otp)
	}
	return verification.Payload(`{"data":{"name":"Asha Rao","address":"12 MG Road Pune","pincode":"411001","gender":"F","dob":"1990-01-01","care_of":"Ravi Rao"}}`), nil
}

type fakeEmployment struct {
	uanFromAadhaar func(aadhaarNo string) (string, verification.Payload, error)
	history        func(uan string) (verification.Payload, error)
	calls          atomic.Int32
}

func (f *fakeEmployment) UANFromAadhaar(_ context.Context, aadhaarNo string) (string, verification.Payload, error) {
	f.calls.Add(1)
	if f.uanFromAadhaar != nil {
		return f.uanFromAadhaar(aadhaarNo)
	}
	return "100200300400", verification.Payload(`{"uan":"100200300400"}`), nil
}

func (f *fakeEmployment) EmploymentHistory(_ context.Context, uan string) (verification.Payload, error) {
	f.calls.Add(1)
	if f.history != nil {
		return f.history(uan)
	}
	return verification.Payload(`{"employment_history":[{"company":"Acme","designation":"Engineer"}]}`), nil
}

type fakeCourt struct {
	search func(q service.CourtQuery) (verification.Payload, error)
	calls  atomic.Int32
}

func (f *fakeCourt) Search(_ context.Context, q service.CourtQuery) (verification.Payload, error) {
	f.calls.Add(1)
	if f.search != nil {
		return f.search(q)
	}
	return verification.Payload(`{"status":"completed","cases":[]}`), nil
}

type fakeAML struct {
	screen func(q service.AMLQuery) (verification.Payload, error)
	calls  atomic.Int32
}

func (f *fakeAML) Screen(_ context.Context, q service.AMLQuery) (verification.Payload, error) {
	f.calls.Add(1)
	if f.screen != nil {
		return f.screen(q)
	}
	return verification.Payload(`{"aml_status":"clear","matches":[]}`), nil
}

type fakeBank struct {
	verify func(q service.BankQuery) (verification.Payload, error)
	calls  atomic.Int32
}

func (f *fakeBank) VerifyAccount(_ context.Context, q service.BankQuery) (verification.Payload, error) {
	f.calls.Add(1)
	if f.verify != nil {
		return f.verify(q)
	}
	return verification.Payload(`{"verificationStatus":"VERIFIED","beneficiaryName":"ASHA RAO","nameMatchScore":96}`), nil
}
