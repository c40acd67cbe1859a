package model

import "time"

type Company struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"type:varchar(100);not null" json:"name"`
	Email      string      `gorm:"type:varchar(100)" json:"email"`
	IsShadowed bool        `gorm:"default:false" json:"-"`
	Candidates []Candidate `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
