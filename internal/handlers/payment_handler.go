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

type PaymentHandler struct {
	paymentService  *services.PaymentService
	materialService *services.MaterialService
	gateway         *services.GatewayService
}

func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		paymentService:  services.NewPaymentService(),
		materialService: services.NewMaterialService(),
		gateway:         services.GetGatewayService(),
	}
}

// CreateOrder opens a gateway order and persists the pending payment.
// The pending row is required: persistence failure fails the request
// rather than returning a gateway order the platform cannot later
// verify or reconcile.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID := middleware.ContextUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	resp, err := h.paymentService.CreateOrder(userID, &req)
	if err != nil {
		logging.L().Error("payment order creation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment order"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify validates a checkout callback. Gates run in order: the bearer
// token's subject must match the declared user id (401, before any
// signature work), then the HMAC signature (400, terminal, nothing
// written), then the material must exist (404). Only then are the
// payment completion and purchase rows written, atomically.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id, payment id, signature, material id and user id are required"})
		return
	}

	if middleware.ContextUserID(c) != req.UserID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user id does not match token subject"})
		return
	}

	valid, err := h.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature)
	if err != nil {
		logging.L().Error("signature verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify payment"})
		return
	}
	if !valid {
		monitoring.PaymentsVerifiedTotal.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment verification failed"})
		return
	}

	material, err := h.materialService.GetByID(req.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
			return
		}
		logging.L().Error("material lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify payment"})
		return
	}

	purchase, alreadyProcessed, err := h.paymentService.Complete(req.UserID, material, req.GatewayOrderID, req.GatewayPaymentID)
	if err != nil {
		logging.L().Error("payment completion failed",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}

	if alreadyProcessed {
		monitoring.PaymentsVerifiedTotal.WithLabelValues("replayed").Inc()
	} else {
		monitoring.PaymentsVerifiedTotal.WithLabelValues("completed").Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"purchase":         purchase,
		"alreadyProcessed": alreadyProcessed,
	})
}
