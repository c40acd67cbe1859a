package repository

import (
	"context"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"gorm.io/gorm"
)

type CheckReportRepository struct {
	db *gorm.DB
}

func NewCheckReportRepository(db *gorm.DB) *CheckReportRepository {
	return &CheckReportRepository{db}
}

func (r *CheckReportRepository) WithTx(tx *gorm.DB) *CheckReportRepository {
	return &CheckReportRepository{tx}
}

// FindByCandidate returns the candidate's reports keyed by check kind.
func (r *CheckReportRepository) FindByCandidate(ctx context.Context, candidateID uint) (map[verification.CheckKind]*model.CheckReport, error) {
	var reports []model.CheckReport
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	byKind := make(map[verification.CheckKind]*model.CheckReport, len(reports))
	for i := range reports {
		byKind[reports[i].Kind] = &reports[i]
	}
	return byKind, nil
}

func (r *CheckReportRepository) FindByCandidateAndKind(ctx context.Context, candidateID uint, kind verification.CheckKind) (*model.CheckReport, error) {
	var report model.CheckReport
	err := r.db.WithContext(ctx).
		First(&report, "candidate_id = ? AND kind = ?", candidateID, kind).Error
	if err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

// Save inserts a new report or updates the existing row in place.
func (r *CheckReportRepository) Save(ctx context.Context, report *model.CheckReport) error {
	if report.ID == 0 {
		return r.db.WithContext(ctx).Create(report).Error
	}
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *CheckReportRepository) CountByCandidate(ctx context.Context, candidateID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CheckReport{}).
		Where("candidate_id = ?", candidateID).Count(&n).Error
	return n, err
}
