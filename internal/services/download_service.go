package services

import (
	"errors"
	"time"

	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/gorm"
)

var ErrNotPurchased = errors.New("material has not been purchased")

type DownloadService struct {
	paymentService *PaymentService
}

func NewDownloadService() *DownloadService {
	return &DownloadService{paymentService: NewPaymentService()}
}

// Track records a first-time download and bumps the material counter.
// Paid materials require a completed purchase. The insert and the
// counter increment share one transaction, and the (user, material)
// unique index collapses concurrent first-downloads into a single row:
// the losing insert sees a duplicate-key conflict and the call reports
// success without incrementing again, so repeat calls are idempotent
// from the caller's perspective.
func (s *DownloadService) Track(userID string, material *models.Material) (alreadyDownloaded bool, err error) {
	if !material.IsFree && material.Price > 0 {
		purchased, err := s.paymentService.HasCompletedPurchase(userID, material.ID)
		if err != nil {
			return false, err
		}
		if !purchased {
			return false, ErrNotPurchased
		}
	}

	db := models.GetDB()

	var count int64
	if err := db.Model(&models.MaterialDownload{}).
		Where("user_id = ? AND material_id = ?", userID, material.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	materialType := "paid"
	if material.IsFree || material.Price == 0 {
		materialType = "free"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		download := &models.MaterialDownload{
			UserID:       userID,
			MaterialID:   material.ID,
			Title:        material.Title,
			MaterialType: materialType,
			DownloadedAt: time.Now(),
		}
		if err := tx.Create(download).Error; err != nil {
			return err
		}
		return tx.Model(&models.Material{}).
			Where("id = ?", material.ID).
			Update("download_count", gorm.Expr("download_count + 1")).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent first download; the row
		// exists and the winner already incremented the counter.
		return true, nil
	}
	return alreadyDownloaded, err
}
