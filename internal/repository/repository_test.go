package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/repository/repositorytest"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrateSeedsStatusesOnce(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()

	require.NoError(t, repository.Migrate(ctx, db))

	var n int64
	require.NoError(t, db.Model(&model.VerificationStatus{}).Count(&n).Error)
	assert.Equal(t, int64(len(verification.AllStatuses)), n)

	status, err := repository.NewVerificationStatusRepository(db).FindByName(ctx, verification.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusCompleted, status.Name)
}

func TestCandidateRepository_FindByIDNotFound(t *testing.T) {
	db := repositorytest.NewDB(t)

	_, err := repository.NewCandidateRepository(db).FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCandidateRepository_NestedRecords(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()
	company := repositorytest.SeedCompany(t, db)
	repo := repository.NewCandidateRepository(db)

	c := &model.Candidate{CompanyID: company.ID, FirstName: "Asha", LastName: "Rao", Email: "asha@x.test"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.SaveNid(ctx, &model.CandidateNid{CandidateID: c.ID, PANNo: "ABCDE1234F"}))
	require.NoError(t, repo.SaveBankAccount(ctx, &model.CandidateBankAccount{CandidateID: c.ID, AccountNo: "1", IFSC: "HDFC0001"}))
	require.NoError(t, repo.ReplaceAddresses(ctx, c.ID, []model.CandidateAddress{{City: "Pune"}, {City: "Goa"}}))
	require.NoError(t, repo.ReplaceAddresses(ctx, c.ID, []model.CandidateAddress{{City: "Delhi"}}))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABCDE1234F", got.Nid.PANNo)
	assert.Equal(t, "HDFC0001", got.BankAccount.IFSC)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Delhi", got.Addresses[0].City)
	assert.Equal(t, c.ID, got.Addresses[0].CandidateID)

	var orphans int64
	require.NoError(t, db.Model(&model.CandidateAddress{}).Where("candidate_id = ?", 0).Count(&orphans).Error)
	assert.Zero(t, orphans)
	assert.Equal(t, verification.StatusPending, got.Status())
	assert.Equal(t, verification.CheckPending, got.IdentityCheck)

	exists, err := repo.ExistsByEmail(ctx, company.ID, "ASHA@x.test")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCandidateRepository_ListAndCount(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()
	company := repositorytest.SeedCompany(t, db)
	repo := repository.NewCandidateRepository(db)
	completed, err := repository.NewVerificationStatusRepository(db).FindByName(ctx, verification.StatusCompleted)
	require.NoError(t, err)

	for i, email := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		c := &model.Candidate{CompanyID: company.ID, FirstName: "N", Email: email}
		if i == 0 {
			c.VerificationStatusID = &completed.ID
		}
		require.NoError(t, repo.Create(ctx, c))
		assert.Len(t, c.CandidateCode, 36)
	}

	items, total, err := repo.List(ctx, repository.CandidateFilter{CompanyID: company.ID, Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	items, total, err = repo.List(ctx, repository.CandidateFilter{CompanyID: company.ID, Status: verification.StatusCompleted, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "a@x.test", items[0].Email)

	counts, err := repo.CountByStatus(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[verification.StatusCompleted])
	assert.Equal(t, int64(2), counts[verification.StatusPending])
}

func TestCheckReportRepository_SaveUpdatesInPlace(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()
	company := repositorytest.SeedCompany(t, db)
	c := &model.Candidate{CompanyID: company.ID, Email: "r@x.test"}
	require.NoError(t, repository.NewCandidateRepository(db).Create(ctx, c))
	repo := repository.NewCheckReportRepository(db)

	report := &model.CheckReport{CandidateID: c.ID, Kind: verification.CheckCourt, Score: verification.IntPtr(60)}
	report.MergeData(map[string]any{"total": 2})
	require.NoError(t, repo.Save(ctx, report))

	again, err := repo.FindByCandidateAndKind(ctx, c.ID, verification.CheckCourt)
	require.NoError(t, err)
	again.Score = verification.IntPtr(100)
	again.MergeData(map[string]any{"total": 0})
	require.NoError(t, repo.Save(ctx, again))

	n, err := repo.CountByCandidate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	byKind, err := repo.FindByCandidate(ctx, c.ID)
	require.NoError(t, err)
	require.Contains(t, byKind, verification.CheckCourt)
	assert.Equal(t, 100, *byKind[verification.CheckCourt].Score)
	assert.Equal(t, json.Number("0"), byKind[verification.CheckCourt].Data["total"])

	_, err = repo.FindByCandidateAndKind(ctx, c.ID, verification.CheckAML)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCandidateRepository_ReplaceChildrenOwnsRows(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()
	company := repositorytest.SeedCompany(t, db)
	repo := repository.NewCandidateRepository(db)

	first := &model.Candidate{CompanyID: company.ID, Email: "one@x.test"}
	second := &model.Candidate{CompanyID: company.ID, Email: "two@x.test"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, first.CandidateCode, second.CandidateCode)

	require.NoError(t, repo.ReplaceEducations(ctx, first.ID, []model.CandidateEducation{{Degree: "BE"}}))
	require.NoError(t, repo.ReplaceEmployments(ctx, first.ID, []model.CandidateEmployment{{Company: "Acme"}, {Company: "Initech"}}))
	// rows claiming another candidate are reassigned to the one being replaced
	require.NoError(t, repo.ReplaceEducations(ctx, second.ID, []model.CandidateEducation{{CandidateID: first.ID, Degree: "MBA"}}))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Educations, 1)
	assert.Equal(t, "BE", got.Educations[0].Degree)
	assert.Len(t, got.Employments, 2)

	other, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, other.Educations, 1)
	assert.Equal(t, "MBA", other.Educations[0].Degree)
}

func TestTransactorRollsBack(t *testing.T) {
	db := repositorytest.NewDB(t)
	ctx := context.Background()
	company := repositorytest.SeedCompany(t, db)

	err := repository.NewTransactor(db).Do(ctx, func(tx *gorm.DB) error {
		c := &model.Candidate{CompanyID: company.ID, Email: "tx@x.test"}
		if err := repository.NewCandidateRepository(db).WithTx(tx).Create(ctx, c); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	exists, err := repository.NewCandidateRepository(db).ExistsByEmail(ctx, company.ID, "tx@x.test")
	require.NoError(t, err)
	assert.False(t, exists)
}
