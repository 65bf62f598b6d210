package models

import "time"

// InfluencerOrder records one sale attributed to an influencer's coupon.
// Rows are written once and never mutated.
type InfluencerOrder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	InfluencerID     uint      `gorm:"not null;index" json:"influencer_id"`
	OrderAmount      float64   `gorm:"not null" json:"order_amount"`
	DiscountAmount   float64   `json:"discount_amount"`
	CommissionAmount float64   `gorm:"not null" json:"commission_amount"`
	CouponCode       string    `gorm:"size:10;index" json:"coupon_code"`
	CustomerEmail    string    `gorm:"size:100" json:"customer_email"`
	MaterialID       *uint     `json:"material_id,omitempty"`
	PaymentRef       string    `gorm:"size:100" json:"payment_ref"`
	Status           string    `gorm:"size:20;default:'completed'" json:"status"`
	CreatedAt        time.Time `json:"created_at"`

	Influencer Influencer `gorm:"foreignKey:InfluencerID" json:"-"`
}

func (InfluencerOrder) TableName() string {
	return "influencer_orders"
}

// TrackOrderRequest is the checkout-completion payload.
type TrackOrderRequest struct {
	CouponCode     string  `json:"coupon_code" binding:"required"`
	OrderAmount    float64 `json:"order_amount" binding:"required"`
	DiscountAmount float64 `json:"discount_amount"`
	CustomerEmail  string  `json:"customer_email"`
	MaterialID     *uint   `json:"material_id"`
	PaymentRef     string  `json:"payment_ref"`
}
