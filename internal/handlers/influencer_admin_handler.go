package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InfluencerAdminHandler struct {
	influencerService *services.InfluencerService
	exportService     *services.ExportService
}

func NewInfluencerAdminHandler() *InfluencerAdminHandler {
	return &InfluencerAdminHandler{
		influencerService: services.NewInfluencerService(),
		exportService:     services.NewExportService(),
	}
}

// Create onboards an influencer. The response carries the generated
// coupon code and the plaintext temp password exactly once.
func (h *InfluencerAdminHandler) Create(c *gin.Context) {
	var req models.CreateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	influencer, tempPassword, err := h.influencerService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is already registered"})
			return
		}
		logging.L().Error("influencer creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create influencer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"influencer":    influencer.Public(),
		"temp_password": tempPassword,
	})
}

// List returns every influencer with order count, sales and commission totals.
func (h *InfluencerAdminHandler) List(c *gin.Context) {
	influencers, err := h.influencerService.List()
	if err != nil {
		logging.L().Error("influencer list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list influencers"})
		return
	}

	items := make([]gin.H, 0, len(influencers))
	for _, influencer := range influencers {
		stats, err := h.influencerService.StatsFor(influencer.ID)
		if err != nil {
			logging.L().Error("influencer stats failed", zap.Uint("influencer_id", influencer.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load influencer stats"})
			return
		}
		items = append(items, gin.H{
			"influencer": influencer.Public(),
			"active":     influencer.Active,
			"created_at": influencer.CreatedAt,
			"stats":      stats,
		})
	}
	c.JSON(http.StatusOK, gin.H{"influencers": items})
}

// UpdateStatus flips the active flag. Influencers are never deleted.
func (h *InfluencerAdminHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid influencer id"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active flag is required"})
		return
	}

	if err := h.influencerService.SetActive(uint(id), *req.Active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "influencer not found"})
			return
		}
		logging.L().Error("influencer status update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update influencer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportCSV streams the influencer roster as a CSV attachment.
func (h *InfluencerAdminHandler) ExportCSV(c *gin.Context) {
	csv, err := h.exportService.InfluencerCSV()
	if err != nil {
		logging.L().Error("influencer export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export influencers"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=influencers.csv")
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
