package services

import (
	"errors"
	"testing"

	"github.com/notesvault/notesvault-api/internal/models"
)

func TestTrackOrderCommission(t *testing.T) {
	setupTestDB(t)
	svc := NewOrderService()

	tests := []struct {
		name   string
		rate   float64
		amount float64
		want   float64
	}{
		{name: "default rate", rate: 0, amount: 1000, want: 100},
		{name: "fractional rate", rate: 12.5, amount: 333.33, want: 333.33 * 12.5 / 100},
		{name: "small amount", rate: 10, amount: 1, want: 0.1},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			influencer := createTestInfluencer(t, "Influencer "+tt.name, string(rune('a'+i))+"@example.com", tt.rate)

			order, err := svc.TrackOrder(&models.TrackOrderRequest{
				CouponCode:  influencer.CouponCode,
				OrderAmount: tt.amount,
			})
			if err != nil {
				t.Fatalf("TrackOrder() error = %v", err)
			}
			// Commission is amount x rate / 100 exactly, no rounding.
			if order.CommissionAmount != tt.want {
				t.Errorf("commission = %v, want %v", order.CommissionAmount, tt.want)
			}

			var stored models.InfluencerOrder
			if err := models.GetDB().First(&stored, order.ID).Error; err != nil {
				t.Fatalf("load stored order: %v", err)
			}
			if stored.CommissionAmount != tt.want {
				t.Errorf("stored commission = %v, want %v", stored.CommissionAmount, tt.want)
			}
			if stored.Status != "completed" {
				t.Errorf("stored status = %q, want completed", stored.Status)
			}
		})
	}
}

func TestTrackOrderInvalidCoupon(t *testing.T) {
	setupTestDB(t)
	svc := NewOrderService()

	_, err := svc.TrackOrder(&models.TrackOrderRequest{
		CouponCode:  "NOSUCH1",
		OrderAmount: 1000,
	})
	if !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("TrackOrder() error = %v, want ErrInvalidCoupon", err)
	}

	var count int64
	models.GetDB().Model(&models.InfluencerOrder{}).Count(&count)
	if count != 0 {
		t.Errorf("order rows = %d, want 0", count)
	}
}

func TestTrackOrderInactiveCoupon(t *testing.T) {
	setupTestDB(t)
	orderSvc := NewOrderService()
	influencerSvc := NewInfluencerService()

	influencer := createTestInfluencer(t, "Rohan Mehta", "rohan@example.com", 10)
	if err := influencerSvc.SetActive(influencer.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	_, err := orderSvc.TrackOrder(&models.TrackOrderRequest{
		CouponCode:  influencer.CouponCode,
		OrderAmount: 500,
	})
	if !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("TrackOrder() on inactive coupon error = %v, want ErrInvalidCoupon", err)
	}
}
