package model

import (
	"time"

	"github.com/fadilmartias/bgv-backend/internal/verification"
	"gorm.io/datatypes"
)

// CheckReport caches the outcome of one external check for a candidate.
// There is at most one row per (candidate, kind); re-runs update it in place.
type CheckReport struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	CandidateID uint                   `gorm:"uniqueIndex:idx_check_report_candidate_kind" json:"candidate_id"`
	Kind        verification.CheckKind `gorm:"type:varchar(20);uniqueIndex:idx_check_report_candidate_kind" json:"kind"`
	// Apis keeps raw provider payloads, one key per provider call.
	Apis      datatypes.JSONMap `json:"apis"`
	Data      datatypes.JSONMap `json:"data"`
	Score     *int              `json:"score"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// MergeApis stores payloads under their keys, keeping entries for other keys.
func (r *CheckReport) MergeApis(apis map[string]verification.Payload) {
	if r.Apis == nil {
		r.Apis = datatypes.JSONMap{}
	}
	for key, payload := range apis {
		r.Apis[key] = payload.Value()
	}
}

// MergeData overlays display fields onto the existing data map.
func (r *CheckReport) MergeData(data map[string]any) {
	if r.Data == nil {
		r.Data = datatypes.JSONMap{}
	}
	for key, value := range data {
		r.Data[key] = value
	}
}
