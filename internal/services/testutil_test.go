package services

import (
	"testing"

	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A fresh connection to :memory: is a fresh database, so pin the
	// pool to a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	models.DB = db

	config.AppConfig = &config.Config{
		GinMode:             "test",
		AuthJWTSecret:       "test-auth-secret",
		InfluencerJWTSecret: "test-influencer-secret",
		RazorpayKeyID:       "rzp_test_key",
		RazorpayKeySecret:   "test-gateway-secret",
		RazorpayBaseURL:     "http://gateway.invalid",
	}
}

func createTestInfluencer(t *testing.T, name, email string, rate float64) *models.Influencer {
	t.Helper()

	influencer, _, err := NewInfluencerService().Create(&models.CreateInfluencerRequest{
		Name:           name,
		Email:          email,
		CommissionRate: rate,
	})
	if err != nil {
		t.Fatalf("create influencer: %v", err)
	}
	return influencer
}

func createTestMaterial(t *testing.T, title string, price float64, free bool) *models.Material {
	t.Helper()

	material := &models.Material{
		Title:   title,
		Subject: "physics",
		Price:   price,
		IsFree:  free,
	}
	if err := models.GetDB().Create(material).Error; err != nil {
		t.Fatalf("create material: %v", err)
	}
	return material
}
