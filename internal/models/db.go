package models

import (
	"log"

	"github.com/notesvault/notesvault-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() error {
	var err error

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Duplicate-key violations come back as gorm.ErrDuplicatedKey so
		// callers can treat uniqueness conflicts as domain outcomes.
		TranslateError: true,
	}

	if config.AppConfig.GinMode == "release" {
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	}

	DB, err = gorm.Open(postgres.Open(config.AppConfig.GetDSN()), gormConfig)
	if err != nil {
		return err
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("database connected and migrated")
	return nil
}

// Migrate runs auto-migration for every entity. Uniqueness of emails,
// coupon codes, gateway ids and (user, material) download pairs lives in
// the schema, not in application-level pre-checks.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Influencer{},
		&InfluencerOrder{},
		&Material{},
		&Payment{},
		&Purchase{},
		&MaterialDownload{},
		&SystemConfig{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
