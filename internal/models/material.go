package models

import (
	"time"

	"gorm.io/gorm"
)

// Material is a downloadable study resource. Price is in rupees;
// free materials skip the purchase gate entirely.
type Material struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Subject       string         `gorm:"size:100;index" json:"subject"`
	Price         float64        `gorm:"default:0" json:"price"`
	IsFree        bool           `gorm:"default:false" json:"is_free"`
	FileURL       string         `gorm:"size:500" json:"file_url"`
	DownloadCount int64          `gorm:"default:0" json:"download_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}

type CreateMaterialRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Subject     string  `json:"subject"`
	Price       float64 `json:"price"`
	IsFree      bool    `json:"is_free"`
	FileURL     string  `json:"file_url"`
}

type UpdateMaterialRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subject     string   `json:"subject"`
	Price       *float64 `json:"price"`
	IsFree      *bool    `json:"is_free"`
	FileURL     string   `json:"file_url"`
}
