package models

import "time"

// AnalysisCache maps a (user, fingerprint) pair to the report produced for
// it, so resubmitting an identical log returns the stored report instead of
// re-running the analysis. Entries are never written for personalized
// submissions (ones carrying a tried note) and are never updated.
type AnalysisCache struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;uniqueIndex:idx_cache_user_fingerprint"`
	Fingerprint string    `json:"fingerprint" gorm:"size:64;not null;uniqueIndex:idx_cache_user_fingerprint"`
	ReportID    uint      `json:"reportId" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (AnalysisCache) TableName() string {
	return "analysis_caches"
}
