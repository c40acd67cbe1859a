package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/bgv-backend/internal/dto"
	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func (e *testEnv) addCandidate(t *testing.T, email string) *model.Candidate {
	t.Helper()
	c, err := e.candidateUC.AddCandidate(context.Background(), dto.CreateCandidateRequest{
		CompanyID: e.company.ID,
		FirstName: " Asha ",
		LastName:  "Rao",
		Gender:    "female",
		DOB:       "1990-01-01",
		Phone:     "9876543210",
		Email:     email,
	})
	require.NoError(t, err)
	return c
}

func TestAddCandidate(t *testing.T) {
	env := newTestEnv(t)
	c := env.addCandidate(t, "asha@example.test")

	assert.NotZero(t, c.ID)
	assert.Len(t, c.CandidateCode, 36)
	assert.Equal(t, "Asha", c.FirstName)
	assert.Equal(t, model.GenderFemale, c.Gender)
	require.NotNil(t, c.DOB)
	assert.Equal(t, "1990-01-01", c.DOB.Format("2006-01-02"))

	got := env.reload(t, c.ID)
	assert.Equal(t, verification.StatusPending, got.Status())
	assert.Equal(t, verification.DefaultScore, got.Score)
	for _, kind := range verification.AllChecks {
		assert.Equal(t, verification.CheckPending, got.CheckStatus(kind))
	}
}

func TestAddCandidate_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.addCandidate(t, "asha@example.test")
	ctx := context.Background()

	_, err := env.candidateUC.AddCandidate(ctx, dto.CreateCandidateRequest{
		CompanyID: env.company.ID, FirstName: "Other", Phone: "9876543210", Email: "ASHA@example.test",
	})
	assert.ErrorIs(t, err, util.ErrDuplicateEmail)

	_, err = env.candidateUC.AddCandidate(ctx, dto.CreateCandidateRequest{
		CompanyID: env.company.ID + 100, FirstName: "Other", Phone: "9876543210", Email: "other@example.test",
	})
	assert.ErrorIs(t, err, util.ErrCompanyNotFound)
}

func TestListCandidatesAndInsights(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.addCandidate(t, "one@example.test")
	env.addCandidate(t, "two@example.test")
	env.addCandidate(t, "three@example.test")

	_, err := env.verifier.RunFullPipeline(ctx, first.ID)
	require.NoError(t, err)

	items, page, err := env.candidateUC.ListCandidates(ctx, dto.ListCandidatesQuery{CompanyID: env.company.ID, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 3, page.TotalItems)
	assert.EqualValues(t, 2, page.TotalPages)

	items, _, err = env.candidateUC.ListCandidates(ctx, dto.ListCandidatesQuery{CompanyID: env.company.ID, Status: string(verification.StatusCompleted)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	insights, err := env.candidateUC.Insights(ctx, env.company.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, insights.Total)
	assert.EqualValues(t, 2, insights.Pending)
	assert.EqualValues(t, 1, insights.Completed)
}

func TestGetReport_ListsEveryCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.seedCandidate(t, fullSeed())

	_, err := env.verifier.RunSingleCheck(ctx, c.ID, verification.CheckCourt)
	require.NoError(t, err)

	report, err := env.candidateUC.GetReport(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, report.Checks, len(verification.AllChecks))
	for _, check := range report.Checks {
		if check.Kind == verification.CheckCourt {
			assert.Equal(t, verification.CheckVerified, check.Status)
			require.NotNil(t, check.Score)
			assert.Equal(t, 100, *check.Score)
			assert.NotNil(t, check.UpdatedAt)
			continue
		}
		assert.Nil(t, check.Score, "check %s", check.Kind)
		assert.Equal(t, verification.CheckPending, check.Status)
	}

	_, err = env.candidateUC.GetReport(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateCandidate_SavesProfileAndVerifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.addCandidate(t, "asha@example.test")

	var bankQuery service.BankQuery
	env.bank.verify = func(q service.BankQuery) (verification.Payload, error) {
		bankQuery = q
		return verification.Payload(`{"status":1,"beneficiary_name":"ASHA RAO"}`), nil
	}

	updated, result, err := env.candidateUC.UpdateCandidate(ctx, c.ID, dto.UpdateCandidateRequest{
		FirstName: ptr("Asha"),
		Meta:      &dto.CandidateMetaRequest{FirstName: "Ignored", FatherName: ptr("Ravi Rao")},
		Nid:       &dto.NidRequest{PANNo: ptr("abcde1234f"), AadharNo: ptr("999988887777")},
		BankAccount: &dto.BankAccountRequest{
			AccountNo: ptr("50100012345678"),
			IFSC:      ptr("hdfc0001234"),
		},
		Address: []dto.AddressRequest{
			{HouseNo: "12", Locality: "MG Road", City: "Pune", Pincode: "411001", IsCurrent: ptr(true)},
		},
		Education: []dto.EducationRequest{{University: "Pune University", Degree: "BE", Certificate: "CERT-1"}},
		Employment: &dto.EmploymentWrapper{Data: []dto.EmploymentRequest{{
			Company: "Acme", Designation: "Engineer", StartsFrom: "2015-06-01",
			Manager: &dto.ManagerInfo{FirstName: "Vik", LastName: "Shah"},
		}}},
		Verify: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, verification.StatusCompleted, result.Status)

	assert.Equal(t, "Asha", updated.FirstName)
	assert.Equal(t, "Ravi Rao", updated.FatherName)
	require.NotNil(t, updated.Nid)
	assert.Equal(t, "ABCDE1234F", updated.Nid.PANNo)
	require.NotNil(t, updated.BankAccount)
	assert.Equal(t, "HDFC0001234", updated.BankAccount.IFSC)
	assert.Equal(t, "ASHA RAO", updated.BankAccount.Name)
	require.Len(t, updated.Addresses, 1)
	require.Len(t, updated.Educations, 1)
	assert.Equal(t, "CERT-1", updated.Educations[0].Certificate)
	require.Len(t, updated.Employments, 1)
	assert.Equal(t, "Vik Shah", updated.Employments[0].Manager)

	assert.Equal(t, "HDFC0001234", bankQuery.IFSC)
	assert.Equal(t, verification.StatusCompleted, updated.Status())
	assert.Equal(t, verification.CheckVerified, updated.BankAccountCheck)
}

func TestUpdateCandidate_WithoutVerifyLeavesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.addCandidate(t, "asha@example.test")
	env.addCandidate(t, "taken@example.test")

	updated, result, err := env.candidateUC.UpdateCandidate(ctx, c.ID, dto.UpdateCandidateRequest{Phone: ptr("9000000000")})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "9000000000", updated.Phone)
	assert.Equal(t, verification.StatusPending, updated.Status())
	assert.Zero(t, env.providerCalls())

	_, _, err = env.candidateUC.UpdateCandidate(ctx, c.ID, dto.UpdateCandidateRequest{Email: ptr("taken@example.test")})
	assert.ErrorIs(t, err, util.ErrDuplicateEmail)
}

func TestUpdateCandidate_VerifyResumesInProgress(t *testing.T) {
	env := newTestEnv(t)
	seed := fullSeed()
	seed.status = verification.StatusInProgress
	c := env.seedCandidate(t, seed)

	updated, result, err := env.candidateUC.UpdateCandidate(context.Background(), c.ID, dto.UpdateCandidateRequest{
		Phone:  ptr("9000000001"),
		Verify: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, verification.StatusCompleted, result.Status)
	assert.Equal(t, verification.StatusCompleted, updated.Status())
	assert.Equal(t, "9000000001", updated.Phone)
}

func TestUpsertBankAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.addCandidate(t, "asha@example.test")

	account, err := env.candidateUC.UpsertBankAccount(ctx, c.ID, dto.UpsertBankAccountRequest{AccountNo: "1234", IFSC: "sbin0000001"})
	require.NoError(t, err)
	assert.Equal(t, "SBIN0000001", account.IFSC)

	account, err = env.candidateUC.UpsertBankAccount(ctx, c.ID, dto.UpsertBankAccountRequest{AccountNo: "5678", IFSC: "SBIN0000001"})
	require.NoError(t, err)
	got := env.reload(t, c.ID)
	require.NotNil(t, got.BankAccount)
	assert.Equal(t, account.ID, got.BankAccount.ID)
	assert.Equal(t, "5678", got.BankAccount.AccountNo)
}

func TestAadhaarOTPFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.addCandidate(t, "asha@example.test")

	_, err := env.candidateUC.VerifyAadhaarOTP(ctx, c.ID, dto.AadhaarVerifyRequest{AadharNo: "999988887777", OTP: "123456", ReferenceID: "ref-1"})
	assert.ErrorIs(t, err, util.ErrOTPNotRequested)

	ref, err := env.candidateUC.SendAadhaarOTP(ctx, c.ID, dto.AadhaarOTPRequest{AadharNo: "999988887777"})
	require.NoError(t, err)
	assert.Equal(t, "ref-1", ref)

	_, err = env.candidateUC.VerifyAadhaarOTP(ctx, c.ID, dto.AadhaarVerifyRequest{AadharNo: "111122223333", OTP: "123456", ReferenceID: ref})
	assert.ErrorIs(t, err, util.ErrAadhaarMismatch)

	details, err := env.candidateUC.VerifyAadhaarOTP(ctx, c.ID, dto.AadhaarVerifyRequest{AadharNo: "999988887777", OTP: "123456", ReferenceID: ref})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", details.Name)
	assert.Equal(t, "Ravi Rao", details.FatherName)

	got := env.reload(t, c.ID)
	require.NotNil(t, got.AadharDetails)
	assert.Equal(t, "Asha Rao", got.AadharDetails.Name)
	assert.Equal(t, "12 MG Road Pune", got.AadharAddress)
	assert.Equal(t, "411001", got.AadharPincode)
	require.NotNil(t, got.Nid)
	assert.Equal(t, "999988887777", got.Nid.AadharNo)

	// the pending request is consumed
	_, err = env.candidateUC.VerifyAadhaarOTP(ctx, c.ID, dto.AadhaarVerifyRequest{AadharNo: "999988887777", OTP: "123456", ReferenceID: ref})
	assert.ErrorIs(t, err, util.ErrOTPNotRequested)

	// verified aadhaar alone proves identity
	_, err = env.verifier.RunSingleCheck(ctx, c.ID, verification.CheckIdentity)
	require.NoError(t, err)
	assert.Equal(t, verification.CheckVerified, env.reload(t, c.ID).IdentityCheck)
}

func TestSendAadhaarOTP_NoReference(t *testing.T) {
	env := newTestEnv(t)
	c := env.addCandidate(t, "asha@example.test")
	env.identity.sendOTP = func(string) (verification.Payload, error) {
		return verification.Payload(`{"message":"try later"}`), nil
	}

	_, err := env.candidateUC.SendAadhaarOTP(context.Background(), c.ID, dto.AadhaarOTPRequest{AadharNo: "999988887777"})
	assert.ErrorIs(t, err, verification.ErrProviderRejected)
}
