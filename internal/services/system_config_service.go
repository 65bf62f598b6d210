package services

import (
	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/gorm"
)

type SystemConfigService struct{}

var systemConfigServiceInstance *SystemConfigService

func GetSystemConfigService() *SystemConfigService {
	if systemConfigServiceInstance == nil {
		systemConfigServiceInstance = &SystemConfigService{}
	}
	return systemConfigServiceInstance
}

// GetGatewayConfig reports the effective gateway credentials. The key
// secret itself is never returned, only whether one is set and whether
// it comes from a database override.
func (s *SystemConfigService) GetGatewayConfig(db *gorm.DB) map[string]interface{} {
	keyID := models.GetConfigValue(db, "razorpay_key_id", config.AppConfig.RazorpayKeyID)
	keySecret := models.GetConfigValue(db, "razorpay_key_secret", config.AppConfig.RazorpayKeySecret)

	return map[string]interface{}{
		"key_id":        keyID,
		"key_id_stored": keyID != "" && keyID != config.AppConfig.RazorpayKeyID,
		"secret_set":    keySecret != "",
		"secret_stored": keySecret != "" && keySecret != config.AppConfig.RazorpayKeySecret,
	}
}

// UpdateGatewayConfig stores database overrides for the gateway
// credentials, letting ops rotate keys without a redeploy.
func (s *SystemConfigService) UpdateGatewayConfig(db *gorm.DB, keyID, keySecret string) error {
	if keyID != "" {
		if err := models.UpsertConfig(db, "razorpay_key_id", keyID, "Razorpay Key ID", "razorpay", false); err != nil {
			return err
		}
	}
	if keySecret != "" {
		if err := models.UpsertConfig(db, "razorpay_key_secret", keySecret, "Razorpay Key Secret", "razorpay", true); err != nil {
			return err
		}
	}
	return nil
}
