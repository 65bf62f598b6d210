package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/middleware"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
)

type InfluencerAuthHandler struct {
	influencerService *services.InfluencerService
}

func NewInfluencerAuthHandler() *InfluencerAuthHandler {
	return &InfluencerAuthHandler{influencerService: services.NewInfluencerService()}
}

// Login exchanges coupon code + password for a 7-day session token.
func (h *InfluencerAuthHandler) Login(c *gin.Context) {
	var req models.InfluencerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code and password are required"})
		return
	}

	influencer, err := h.influencerService.Authenticate(req.CouponCode, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid coupon code or password"})
			return
		}
		logging.L().Error("influencer login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := middleware.GenerateInfluencerToken(influencer)
	if err != nil {
		logging.L().Error("influencer token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.InfluencerLoginResponse{
		Token:      token,
		Influencer: influencer.Public(),
	})
}

// Me returns the authenticated influencer's profile and sales stats.
func (h *InfluencerAuthHandler) Me(c *gin.Context) {
	influencerID := middleware.ContextInfluencerID(c)
	if influencerID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	influencer, err := h.influencerService.GetByID(influencerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "influencer not found"})
		return
	}

	stats, err := h.influencerService.StatsFor(influencerID)
	if err != nil {
		logging.L().Error("influencer stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"influencer": influencer.Public(),
		"stats":      stats,
	})
}
