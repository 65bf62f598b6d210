package services

import (
	"github.com/notesvault/notesvault-api/internal/models"
)

type MaterialService struct{}

func NewMaterialService() *MaterialService {
	return &MaterialService{}
}

func (s *MaterialService) GetByID(id uint) (*models.Material, error) {
	var material models.Material
	if err := models.GetDB().First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *MaterialService) List(subject string) ([]models.Material, error) {
	query := models.GetDB().Order("created_at DESC")
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	var materials []models.Material
	err := query.Find(&materials).Error
	return materials, err
}

func (s *MaterialService) Create(req *models.CreateMaterialRequest) (*models.Material, error) {
	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Price:       req.Price,
		IsFree:      req.IsFree,
		FileURL:     req.FileURL,
	}
	if err := models.GetDB().Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Update(id uint, req *models.UpdateMaterialRequest) (*models.Material, error) {
	material, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Subject != "" {
		updates["subject"] = req.Subject
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsFree != nil {
		updates["is_free"] = *req.IsFree
	}
	if req.FileURL != "" {
		updates["file_url"] = req.FileURL
	}

	if len(updates) > 0 {
		if err := models.GetDB().Model(material).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Delete soft-deletes a material; purchase and download history keeps
// referencing the row.
func (s *MaterialService) Delete(id uint) error {
	return models.GetDB().Delete(&models.Material{}, id).Error
}
