package models

// DailyUsage counts accepted analyses per user per calendar day. The date is
// stored as YYYY-MM-DD in server-local time; the unique index makes the
// per-day counter race-free under concurrent submissions.
type DailyUsage struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"userId" gorm:"not null;uniqueIndex:idx_usage_user_date"`
	Date   string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_usage_user_date"`
	Count  int    `json:"count" gorm:"not null;default:0"`
}

func (DailyUsage) TableName() string {
	return "daily_usages"
}
