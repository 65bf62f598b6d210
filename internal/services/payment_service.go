package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/gorm"
)

var ErrPaymentProcessed = errors.New("payment already processed")

type PaymentService struct {
	gateway *GatewayService
}

func NewPaymentService() *PaymentService {
	return &PaymentService{gateway: GetGatewayService()}
}

// CreateOrder rounds the requested amounts to whole rupees, opens a
// gateway order for the discounted total and persists the pending
// payment row. The gateway order and its durable record are a single
// required step: if the row cannot be written the whole request fails,
// so an unverifiable gateway order is never handed to the client.
func (s *PaymentService) CreateOrder(userID string, req *models.CreatePaymentOrderRequest) (*models.CreatePaymentOrderResponse, error) {
	original := math.Round(req.Amount)
	discount := math.Round(req.DiscountAmount)
	final := original - discount
	if final < 0 {
		final = 0
	}

	receipt := "rcpt_" + uuid.NewString()[:18]
	order, err := s.gateway.CreateOrder(int64(final)*100, "INR", receipt)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		UserID:         userID,
		MaterialID:     req.MaterialID,
		Amount:         final,
		OriginalAmount: original,
		DiscountAmount: discount,
		CouponCode:     req.CouponCode,
		GatewayOrderID: order.ID,
		Receipt:        receipt,
		Currency:       order.Currency,
		Status:         models.PaymentStatusPending,
	}
	if err := models.GetDB().Create(payment).Error; err != nil {
		return nil, err
	}

	return &models.CreatePaymentOrderResponse{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		KeyID:     s.gateway.KeyID(),
		PaymentID: payment.ID,
		Final:     final,
	}, nil
}

// Complete marks the payment for a verified callback as completed and
// writes the purchase row, both inside one transaction. The unique
// index on the gateway payment id plus the status = 'pending' update
// guard make the pending -> completed transition happen at most once
// per gateway payment id; a replay reports the existing purchase
// instead of writing a second pair of rows.
func (s *PaymentService) Complete(userID string, material *models.Material, gatewayOrderID, gatewayPaymentID string) (*models.Purchase, bool, error) {
	db := models.GetDB()

	var purchase *models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.Payment{}).
			Where("gateway_order_id = ? AND status = ?", gatewayOrderID, models.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":             models.PaymentStatusCompleted,
				"gateway_payment_id": gatewayPaymentID,
				"amount":             material.Price,
				"material_id":        material.ID,
				"completed_at":       &now,
			})
		if result.Error != nil {
			return result.Error
		}

		var payment models.Payment
		if result.RowsAffected == 0 {
			// No pending row for this order: either the callback is a
			// replay, or the order was created outside this service.
			err := tx.Where("gateway_payment_id = ?", gatewayPaymentID).First(&payment).Error
			if err == nil {
				return ErrPaymentProcessed
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			payment = models.Payment{
				UserID:           userID,
				MaterialID:       &material.ID,
				Amount:           material.Price,
				OriginalAmount:   material.Price,
				GatewayOrderID:   gatewayOrderID,
				GatewayPaymentID: &gatewayPaymentID,
				Currency:         "INR",
				Status:           models.PaymentStatusCompleted,
				CompletedAt:      &now,
			}
			if err := tx.Create(&payment).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrPaymentProcessed
				}
				return err
			}
		} else {
			if err := tx.Where("gateway_order_id = ?", gatewayOrderID).First(&payment).Error; err != nil {
				return err
			}
		}

		purchase = &models.Purchase{
			UserID:     userID,
			MaterialID: material.ID,
			PaymentID:  payment.ID,
			Amount:     material.Price,
			Status:     "completed",
		}
		return tx.Create(purchase).Error
	})

	if errors.Is(err, ErrPaymentProcessed) {
		existing, findErr := s.findPurchaseByGatewayPayment(gatewayPaymentID)
		if findErr != nil {
			return nil, true, nil
		}
		return existing, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return purchase, false, nil
}

func (s *PaymentService) findPurchaseByGatewayPayment(gatewayPaymentID string) (*models.Purchase, error) {
	db := models.GetDB()

	var payment models.Payment
	if err := db.Where("gateway_payment_id = ?", gatewayPaymentID).First(&payment).Error; err != nil {
		return nil, err
	}
	var purchase models.Purchase
	if err := db.Where("payment_id = ?", payment.ID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// HasCompletedPurchase reports whether the user already owns the material.
func (s *PaymentService) HasCompletedPurchase(userID string, materialID uint) (bool, error) {
	var count int64
	err := models.GetDB().Model(&models.Purchase{}).
		Where("user_id = ? AND material_id = ? AND status = ?", userID, materialID, "completed").
		Count(&count).Error
	return count > 0, err
}
