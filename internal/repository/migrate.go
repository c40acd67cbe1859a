package repository

import (
	"context"
	"fmt"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"gorm.io/gorm"
)

// Migrate creates or updates every table and seeds the status lookup.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.Company{},
		&model.VerificationStatus{},
		&model.Candidate{},
		&model.CandidateNid{},
		&model.CandidateAddress{},
		&model.CandidateAadharDetails{},
		&model.CandidateEducation{},
		&model.CandidateEmployment{},
		&model.CandidateBankAccount{},
		&model.CheckReport{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := NewVerificationStatusRepository(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed verification status: %w", err)
	}
	return nil
}
