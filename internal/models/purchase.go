package models

import "time"

// Purchase is durable proof that a user paid for a material. Paid
// downloads are gated on a completed purchase row existing.
type Purchase struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;not null;index:idx_purchase_user_material" json:"user_id"`
	MaterialID uint      `gorm:"not null;index:idx_purchase_user_material" json:"material_id"`
	PaymentID  uint      `gorm:"not null;index" json:"payment_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Status     string    `gorm:"size:20;default:'completed'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	Material Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}

func (Purchase) TableName() string {
	return "purchases"
}
