package models

import "time"

// MaterialDownload records the first download of a material by a user.
// The (user_id, material_id) unique index makes the first-download
// check race-safe: concurrent inserts collapse into one row and the
// counter is only incremented by the insert that won.
type MaterialDownload struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:64;not null;uniqueIndex:idx_download_user_material" json:"user_id"`
	MaterialID   uint      `gorm:"not null;uniqueIndex:idx_download_user_material" json:"material_id"`
	Title        string    `gorm:"size:200" json:"title"`
	MaterialType string    `gorm:"size:20" json:"material_type"` // free or paid
	DownloadedAt time.Time `json:"downloaded_at"`
}

func (MaterialDownload) TableName() string {
	return "material_downloads"
}

// TrackDownloadRequest records a download event for the caller.
type TrackDownloadRequest struct {
	MaterialID uint   `json:"material_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
}
