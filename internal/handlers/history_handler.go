package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/middleware"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	historyService *services.HistoryService
}

func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{historyService: services.NewHistoryService()}
}

// Purchases lists the caller's purchases, newest first.
func (h *HistoryHandler) Purchases(c *gin.Context) {
	userID := middleware.ContextUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.historyService.Purchases(userID)
	if err != nil {
		logging.L().Error("purchase history failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load purchases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": items})
}

// Downloads lists the caller's download history, newest first.
func (h *HistoryHandler) Downloads(c *gin.Context) {
	userID := middleware.ContextUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	items, err := h.historyService.Downloads(userID)
	if err != nil {
		logging.L().Error("download history failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load downloads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloads": items})
}
