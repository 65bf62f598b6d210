package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
)

type SystemConfigHandler struct {
	configService *services.SystemConfigService
}

func NewSystemConfigHandler() *SystemConfigHandler {
	return &SystemConfigHandler{configService: services.GetSystemConfigService()}
}

// GetGatewayConfig shows the effective gateway credential state.
func (h *SystemConfigHandler) GetGatewayConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.GetGatewayConfig(models.GetDB()))
}

// UpdateGatewayConfig stores database overrides for the gateway keys.
func (h *SystemConfigHandler) UpdateGatewayConfig(c *gin.Context) {
	var req struct {
		KeyID     string `json:"key_id"`
		KeySecret string `json:"key_secret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.KeyID == "" && req.KeySecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.configService.UpdateGatewayConfig(models.GetDB(), req.KeyID, req.KeySecret); err != nil {
		logging.L().Error("gateway config update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update gateway config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
