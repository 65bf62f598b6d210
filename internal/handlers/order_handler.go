package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/services"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler() *OrderHandler {
	return &OrderHandler{orderService: services.NewOrderService()}
}

// Track records a completed sale against an influencer's coupon and
// computes the commission.
func (h *OrderHandler) Track(c *gin.Context) {
	var req models.TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code and order amount are required"})
		return
	}

	order, err := h.orderService.TrackOrder(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCoupon) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or inactive coupon code"})
			return
		}
		logging.L().Error("order tracking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
