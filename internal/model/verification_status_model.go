package model

import (
	"time"

	"github.com/fadilmartias/bgv-backend/internal/verification"
)

// VerificationStatus is the lookup table of overall candidate states. Rows are
// seeded at migration time and always referenced by name.
type VerificationStatus struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Name      verification.Status `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (VerificationStatus) TableName() string {
	return "verification_status"
}
