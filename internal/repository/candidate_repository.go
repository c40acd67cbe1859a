package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

func (r *CandidateRepository) WithTx(tx *gorm.DB) *CandidateRepository {
	return &CandidateRepository{tx}
}

type CandidateFilter struct {
	CompanyID uint
	Status    verification.Status
	Search    string
	Page      int
	PageSize  int
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(candidate).Error
}

// Save writes the candidate's own columns. Nested records have their own methods.
func (r *CandidateRepository) Save(ctx context.Context, candidate *model.Candidate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(candidate).Error
}

// UpdateColumns writes only the named columns so concurrent edits to other
// fields are not overwritten.
func (r *CandidateRepository) UpdateColumns(ctx context.Context, id uint, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Candidate{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID loads the candidate with every nested record and its reports.
func (r *CandidateRepository) FindByID(ctx context.Context, id uint) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.WithContext(ctx).
		Preload("VerificationStatus").
		Preload("Nid").
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("AadharDetails").
		Preload("Educations", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Employments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("BankAccount").
		Preload("Reports").
		First(&candidate, "id = ? AND is_shadowed = ?", id, false).Error
	if err != nil {
		return nil, translate(err)
	}
	return &candidate, nil
}

func (r *CandidateRepository) ExistsByEmail(ctx context.Context, companyID uint, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Candidate{}).
		Where("company_id = ? AND LOWER(email) = ? AND is_shadowed = ?", companyID, strings.ToLower(email), false).
		Count(&n).Error
	return n > 0, err
}

func (r *CandidateRepository) scoped(ctx context.Context, f CandidateFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Candidate{}).Where("candidates.is_shadowed = ?", false)
	if f.CompanyID != 0 {
		q = q.Where("candidates.company_id = ?", f.CompanyID)
	}
	if f.Status != "" {
		q = q.Joins("JOIN verification_status ON verification_status.id = candidates.verification_status_id").
			Where("verification_status.name = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(candidates.first_name) LIKE ? OR LOWER(candidates.last_name) LIKE ? OR LOWER(candidates.email) LIKE ?", like, like, like)
	}
	return q
}

func (r *CandidateRepository) List(ctx context.Context, f CandidateFilter) ([]model.Candidate, int64, error) {
	var total int64
	if err := r.scoped(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var candidates []model.Candidate
	err := r.scoped(ctx, f).
		Preload("VerificationStatus").
		Order("candidates.id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&candidates).Error
	return candidates, total, err
}

type statusCount struct {
	Name  verification.Status
	Count int64
}

// CountByStatus groups the company's candidates by overall status name.
// Candidates without a status are counted as PENDING.
func (r *CandidateRepository) CountByStatus(ctx context.Context, companyID uint) (map[verification.Status]int64, error) {
	var rows []statusCount
	q := r.db.WithContext(ctx).Model(&model.Candidate{}).
		Select("verification_status.name AS name, COUNT(*) AS count").
		Joins("LEFT JOIN verification_status ON verification_status.id = candidates.verification_status_id").
		Where("candidates.is_shadowed = ?", false).
		Group("verification_status.name")
	if companyID != 0 {
		q = q.Where("candidates.company_id = ?", companyID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[verification.Status]int64, len(verification.AllStatuses))
	for _, row := range rows {
		counts[verification.NormalizeStatus(row.Name)] += row.Count
	}
	return counts, nil
}

func (r *CandidateRepository) SaveNid(ctx context.Context, nid *model.CandidateNid) error {
	return r.db.WithContext(ctx).Save(nid).Error
}

func (r *CandidateRepository) SaveAadharDetails(ctx context.Context, details *model.CandidateAadharDetails) error {
	return r.db.WithContext(ctx).Save(details).Error
}

func (r *CandidateRepository) SaveBankAccount(ctx context.Context, account *model.CandidateBankAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *CandidateRepository) UpdateBankAccountName(ctx context.Context, candidateID uint, name string) error {
	return r.db.WithContext(ctx).Model(&model.CandidateBankAccount{}).
		Where("candidate_id = ?", candidateID).
		Update("name", name).Error
}

// ReplaceAddresses swaps the candidate's address list for the given one.
func (r *CandidateRepository) ReplaceAddresses(ctx context.Context, candidateID uint, addresses []model.CandidateAddress) error {
	return replaceChildren(r.db.WithContext(ctx), candidateID, addresses)
}

func (r *CandidateRepository) ReplaceEducations(ctx context.Context, candidateID uint, educations []model.CandidateEducation) error {
	return replaceChildren(r.db.WithContext(ctx), candidateID, educations)
}

func (r *CandidateRepository) ReplaceEmployments(ctx context.Context, candidateID uint, employments []model.CandidateEmployment) error {
	return replaceChildren(r.db.WithContext(ctx), candidateID, employments)
}

// replaceChildren deletes the candidate's rows of type T and inserts rows,
// all of them owned by candidateID.
func replaceChildren[T any, P interface {
	*T
	AssignCandidate(id uint)
}](db *gorm.DB, candidateID uint, rows []T) error {
	if err := db.Where("candidate_id = ?", candidateID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		P(&rows[i]).AssignCandidate(candidateID)
	}
	return db.Create(&rows).Error
}
