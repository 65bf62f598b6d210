package services

import (
	"time"

	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/samber/lo"
)

type HistoryService struct{}

func NewHistoryService() *HistoryService {
	return &HistoryService{}
}

// PurchaseItem is a purchase row joined with material metadata.
type PurchaseItem struct {
	ID         uint      `json:"id"`
	MaterialID uint      `json:"material_id"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// DownloadItem is one row of the user's download history.
type DownloadItem struct {
	ID           uint      `json:"id"`
	MaterialID   uint      `json:"material_id"`
	Title        string    `json:"title"`
	MaterialType string    `json:"material_type"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Purchases returns the caller's purchases, newest first.
func (s *HistoryService) Purchases(userID string) ([]PurchaseItem, error) {
	var purchases []models.Purchase
	err := models.GetDB().
		Preload("Material").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(purchases, func(p models.Purchase, _ int) PurchaseItem {
		return PurchaseItem{
			ID:         p.ID,
			MaterialID: p.MaterialID,
			Title:      p.Material.Title,
			Subject:    p.Material.Subject,
			Amount:     p.Amount,
			Status:     p.Status,
			CreatedAt:  p.CreatedAt,
		}
	}), nil
}

// Downloads returns the caller's download history, newest first.
func (s *HistoryService) Downloads(userID string) ([]DownloadItem, error) {
	var downloads []models.MaterialDownload
	err := models.GetDB().
		Where("user_id = ?", userID).
		Order("downloaded_at DESC").
		Find(&downloads).Error
	if err != nil {
		return nil, err
	}

	return lo.Map(downloads, func(d models.MaterialDownload, _ int) DownloadItem {
		return DownloadItem{
			ID:           d.ID,
			MaterialID:   d.MaterialID,
			Title:        d.Title,
			MaterialType: d.MaterialType,
			DownloadedAt: d.DownloadedAt,
		}
	}), nil
}
