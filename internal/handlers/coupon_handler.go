package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// couponDiscountPercent is the fixed checkout discount every active
// coupon grants.
const couponDiscountPercent = 10

type CouponHandler struct {
	influencerService *services.InfluencerService
}

func NewCouponHandler() *CouponHandler {
	return &CouponHandler{influencerService: services.NewInfluencerService()}
}

// Verify checks a coupon code. Unknown or inactive codes are a 200 with
// valid=false, not an error status: callers must inspect the body. Only
// a missing code is a 400.
func (h *CouponHandler) Verify(c *gin.Context) {
	var req struct {
		CouponCode string `json:"coupon_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CouponCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code is required"})
		return
	}

	influencer, err := h.influencerService.FindActiveByCoupon(req.CouponCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"valid": false})
			return
		}
		logging.L().Error("coupon lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":           true,
		"discountPercent": couponDiscountPercent,
		"influencerId":    influencer.ID,
	})
}
