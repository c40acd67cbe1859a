package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/config"
	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/repository/repositorytest"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	candidates *repository.CandidateRepository
	reports    *repository.CheckReportRepository
	statuses   *repository.VerificationStatusRepository
	company    *model.Company

	identity   *fakeIdentity
	employment *fakeEmployment
	court      *fakeCourt
	aml        *fakeAML
	bank       *fakeBank

	verifier    *VerificationUsecase
	candidateUC *CandidateUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := repositorytest.NewDB(t)
	logger := zaptest.NewLogger(t)
	env := &testEnv{
		db:         db,
		candidates: repository.NewCandidateRepository(db),
		reports:    repository.NewCheckReportRepository(db),
		statuses:   repository.NewVerificationStatusRepository(db),
		company:    repositorytest.SeedCompany(t, db),
		identity:   &fakeIdentity{},
		employment: &fakeEmployment{},
		court:      &fakeCourt{},
		aml:        &fakeAML{},
		bank:       &fakeBank{},
	}
	cfg := &config.PipelineConfig{ConcurrentChecks: 5, AadhaarOTPTTL: time.Minute}
	transactor := repository.NewTransactor(db)
	env.verifier = NewVerificationUsecase(transactor, env.candidates, env.reports, env.statuses,
		VerificationServices{
			Identity:   env.identity,
			Employment: env.employment,
			Court:      env.court,
			AML:        env.aml,
			Bank:       env.bank,
		}, cfg, nil, logger)
	env.candidateUC = NewCandidateUsecase(transactor, env.candidates, repository.NewCompanyRepository(db),
		env.statuses, env.identity, env.verifier, cfg, logger)
	return env
}

type candidateSeed struct {
	firstName string
	pan       string
	aadhaar   string
	uan       string
	bank      bool
	status    verification.Status
}

func fullSeed() candidateSeed {
	return candidateSeed{firstName: "Asha", pan: "ABCDE1234F", aadhaar: "999988887777", bank: true}
}

func (e *testEnv) seedCandidate(t *testing.T, s candidateSeed) *model.Candidate {
	t.Helper()
	ctx := context.Background()
	if s.status == "" {
		s.status = verification.StatusPending
	}
	status, err := e.statuses.FindByName(ctx, s.status)
	require.NoError(t, err)

	c := &model.Candidate{
		CandidateCode:        "code-" + s.firstName + s.pan,
		FirstName:            s.firstName,
		LastName:             "Rao",
		Email:                s.firstName + "@example.test",
		Phone:                "9876543210",
		UAN:                  s.uan,
		Score:                verification.DefaultScore,
		CompanyID:            e.company.ID,
		VerificationStatusID: &status.ID,
	}
	for _, kind := range verification.AllChecks {
		c.SetCheckStatus(kind, verification.CheckPending)
	}
	require.NoError(t, e.candidates.Create(ctx, c))
	if s.pan != "" || s.aadhaar != "" {
		require.NoError(t, e.candidates.SaveNid(ctx, &model.CandidateNid{CandidateID: c.ID, PANNo: s.pan, AadharNo: s.aadhaar}))
	}
	if s.bank {
		require.NoError(t, e.candidates.SaveBankAccount(ctx, &model.CandidateBankAccount{CandidateID: c.ID, AccountNo: "50100012345678", IFSC: "HDFC0001234"}))
	}
	return c
}

func (e *testEnv) reload(t *testing.T, id uint) *model.Candidate {
	t.Helper()
	c, err := e.candidates.FindByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (e *testEnv) reportsOf(t *testing.T, id uint) map[verification.CheckKind]*model.CheckReport {
	t.Helper()
	byKind, err := e.reports.FindByCandidate(context.Background(), id)
	require.NoError(t, err)
	return byKind
}

func (e *testEnv) providerCalls() int32 {
	return e.identity.calls.Load() + e.employment.calls.Load() + e.court.calls.Load() + e.aml.calls.Load() + e.bank.calls.Load()
}
