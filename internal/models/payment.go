package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Payment tracks one gateway checkout attempt. A row is created pending
// when the gateway order is opened and transitions to completed at most
// once: the gateway payment id carries a unique index and the status
// update is guarded by status = 'pending'.
type Payment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           string     `gorm:"size:64;not null;index" json:"user_id"`
	MaterialID       *uint      `gorm:"index" json:"material_id,omitempty"`
	Amount           float64    `gorm:"not null" json:"amount"`
	OriginalAmount   float64    `json:"original_amount"`
	DiscountAmount   float64    `json:"discount_amount"`
	CouponCode       string     `gorm:"size:10" json:"coupon_code,omitempty"`
	GatewayOrderID   string     `gorm:"size:100;uniqueIndex;not null" json:"gateway_order_id"`
	GatewayPaymentID *string    `gorm:"size:100;uniqueIndex" json:"gateway_payment_id,omitempty"`
	Receipt          string     `gorm:"size:64" json:"receipt"`
	Currency         string     `gorm:"size:10;default:'INR'" json:"currency"`
	Status           string     `gorm:"size:20;index;default:'pending'" json:"status"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	return nil
}

// CreatePaymentOrderRequest opens a gateway order. Amounts arrive in
// rupees and are rounded to whole rupees before hitting the gateway.
type CreatePaymentOrderRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	MaterialID     *uint   `json:"material_id"`
	CouponCode     string  `json:"coupon_code"`
	DiscountAmount float64 `json:"discount_amount"`
}

type CreatePaymentOrderResponse struct {
	OrderID   string  `json:"order_id"`
	Amount    int64   `json:"amount"` // minor currency unit (paise)
	Currency  string  `json:"currency"`
	KeyID     string  `json:"key_id"`
	PaymentID uint    `json:"payment_id"`
	Final     float64 `json:"final_amount"`
}

// VerifyPaymentRequest is the client callback after gateway checkout.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	GatewaySignature string `json:"gateway_signature" binding:"required"`
	MaterialID       uint   `json:"material_id" binding:"required"`
	UserID           string `json:"user_id" binding:"required"`
}
