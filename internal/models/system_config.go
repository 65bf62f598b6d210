package models

import (
	"time"

	"gorm.io/gorm"
)

// SystemConfig is a key-value override store. Gateway credentials and
// similar operational knobs can be rotated from the database without a
// redeploy; the environment value is the fallback.
type SystemConfig struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Key       string         `gorm:"uniqueIndex;not null" json:"key"`
	Value     string         `gorm:"type:text" json:"value"`
	Label     string         `json:"label"`
	Category  string         `gorm:"index" json:"category"` // razorpay, influencer, smtp
	IsSecret  bool           `gorm:"default:false" json:"is_secret"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SystemConfig) TableName() string {
	return "system_configs"
}

// GetConfigValue returns the database override for key, or envValue
// when no override is set.
func GetConfigValue(db *gorm.DB, key, envValue string) string {
	var config SystemConfig
	if err := db.Where("key = ?", key).First(&config).Error; err == nil && config.Value != "" {
		return config.Value
	}
	return envValue
}

// UpsertConfig creates or updates an override.
func UpsertConfig(db *gorm.DB, key, value, label, category string, isSecret bool) error {
	var config SystemConfig
	result := db.Where("key = ?", key).First(&config)

	if result.Error != nil {
		config = SystemConfig{
			Key:      key,
			Value:    value,
			Label:    label,
			Category: category,
			IsSecret: isSecret,
		}
		return db.Create(&config).Error
	}

	return db.Model(&config).Updates(map[string]interface{}{
		"value":     value,
		"label":     label,
		"category":  category,
		"is_secret": isSecret,
	}).Error
}
