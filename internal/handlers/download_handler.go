package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/middleware"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/monitoring"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DownloadHandler struct {
	downloadService *services.DownloadService
	materialService *services.MaterialService
}

func NewDownloadHandler() *DownloadHandler {
	return &DownloadHandler{
		downloadService: services.NewDownloadService(),
		materialService: services.NewMaterialService(),
	}
}

// Track records a first-time download. Paid materials require a
// completed purchase (403 otherwise). Repeat calls for the same
// (user, material) pair succeed without incrementing the counter again.
func (h *DownloadHandler) Track(c *gin.Context) {
	var req models.TrackDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "material id and user id are required"})
		return
	}

	if middleware.ContextUserID(c) != req.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user id does not match token subject"})
		return
	}

	material, err := h.materialService.GetByID(req.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		logging.L().Error("material lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track download"})
		return
	}

	alreadyDownloaded, err := h.downloadService.Track(req.UserID, material)
	if err != nil {
		if errors.Is(err, services.ErrNotPurchased) {
			c.JSON(http.StatusForbidden, gin.H{"error": "material has not been purchased"})
			return
		}
		logging.L().Error("download tracking failed",
			zap.String("user_id", req.UserID),
			zap.Uint("material_id", req.MaterialID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track download"})
		return
	}

	if !alreadyDownloaded {
		monitoring.DownloadsTrackedTotal.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"already_downloaded": alreadyDownloaded,
	})
}
