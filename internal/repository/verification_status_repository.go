package repository

import (
	"context"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationStatusRepository struct {
	db *gorm.DB
}

func NewVerificationStatusRepository(db *gorm.DB) *VerificationStatusRepository {
	return &VerificationStatusRepository{db}
}

func (r *VerificationStatusRepository) WithTx(tx *gorm.DB) *VerificationStatusRepository {
	return &VerificationStatusRepository{tx}
}

// Seed inserts every known status name, leaving existing rows alone.
func (r *VerificationStatusRepository) Seed(ctx context.Context) error {
	rows := make([]model.VerificationStatus, 0, len(verification.AllStatuses))
	for _, s := range verification.AllStatuses {
		rows = append(rows, model.VerificationStatus{Name: s})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error
}

func (r *VerificationStatusRepository) FindByName(ctx context.Context, name verification.Status) (*model.VerificationStatus, error) {
	var status model.VerificationStatus
	if err := r.db.WithContext(ctx).First(&status, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}
