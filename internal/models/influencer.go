package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Influencer is a referral partner with a personal coupon code. The
// plaintext temp password is returned exactly once at creation time;
// only the bcrypt hash is stored.
type Influencer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CouponCode     string    `gorm:"size:10;uniqueIndex;not null" json:"coupon_code"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	CommissionRate float64   `gorm:"default:10" json:"commission_rate"` // percent
	Active         bool      `gorm:"default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Influencer) TableName() string {
	return "influencers"
}

func (i *Influencer) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	i.PasswordHash = string(hashed)
	return nil
}

func (i *Influencer) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(i.PasswordHash), []byte(password)) == nil
}

// PublicProfile is the influencer projection returned to clients.
// It never carries the password hash.
type PublicProfile struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	CouponCode     string  `json:"coupon_code"`
	CommissionRate float64 `json:"commission_rate"`
}

func (i *Influencer) Public() *PublicProfile {
	return &PublicProfile{
		ID:             i.ID,
		Name:           i.Name,
		Email:          i.Email,
		CouponCode:     i.CouponCode,
		CommissionRate: i.CommissionRate,
	}
}

// CreateInfluencerRequest is the admin payload for onboarding an influencer.
type CreateInfluencerRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	CommissionRate float64 `json:"commission_rate"`
}

// InfluencerLoginRequest authenticates by coupon code + temp password.
type InfluencerLoginRequest struct {
	CouponCode string `json:"coupon_code" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type InfluencerLoginResponse struct {
	Token      string         `json:"token"`
	Influencer *PublicProfile `json:"influencer"`
}

// InfluencerStats aggregates tracked orders for one influencer.
type InfluencerStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalSales      float64 `json:"total_sales"`
	TotalCommission float64 `json:"total_commission"`
}
