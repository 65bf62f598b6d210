package services

import (
	"errors"

	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidCoupon = errors.New("invalid or inactive coupon code")

type OrderService struct {
	influencerService *InfluencerService
}

func NewOrderService() *OrderService {
	return &OrderService{influencerService: NewInfluencerService()}
}

// TrackOrder records one completed sale against an influencer's coupon.
// Commission is orderAmount x rate / 100, kept as exact float64 with no
// rounding; the stored row is immutable afterwards.
func (s *OrderService) TrackOrder(req *models.TrackOrderRequest) (*models.InfluencerOrder, error) {
	influencer, err := s.influencerService.FindActiveByCoupon(req.CouponCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	order := &models.InfluencerOrder{
		InfluencerID:     influencer.ID,
		OrderAmount:      req.OrderAmount,
		DiscountAmount:   req.DiscountAmount,
		CommissionAmount: req.OrderAmount * influencer.CommissionRate / 100,
		CouponCode:       influencer.CouponCode,
		CustomerEmail:    req.CustomerEmail,
		MaterialID:       req.MaterialID,
		PaymentRef:       req.PaymentRef,
		Status:           "completed",
	}

	if err := models.GetDB().Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
