package models

import (
	"time"

	"gorm.io/gorm"
)

// SyncLog is the append-only record of one sync attempt.
type SyncLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// success | error | skipped
	Status string `gorm:"column:status;size:20;not null;index" json:"status"`
	// full | incremental
	Mode string `gorm:"column:mode;size:20;not null" json:"mode"`

	NewProducts     int `gorm:"column:new_products;default:0" json:"new_products"`
	UpdatedProducts int `gorm:"column:updated_products;default:0" json:"updated_products"`
	ErrorCount      int `gorm:"column:error_count;default:0" json:"error_count"`

	DurationMs int64     `gorm:"column:duration_ms;default:0" json:"duration_ms"`
	SyncedFrom time.Time `gorm:"column:synced_from" json:"synced_from"`

	Message string `gorm:"column:message;type:text" json:"message"`

	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}

// RecentSyncErrors counts problematic syncs inside a rolling window.
func RecentSyncErrors(db *gorm.DB, window time.Duration) (int64, error) {
	var count int64
	err := db.Model(&SyncLog{}).
		Where("created_at >= ?", time.Now().Add(-window)).
		Where("status = ? OR error_count > 0", "error").
		Count(&count).Error
	return count, err
}
