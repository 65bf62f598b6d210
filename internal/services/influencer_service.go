package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid coupon code or password")
	ErrCouponExhausted    = errors.New("could not generate a unique coupon code")
)

const (
	couponNameLen   = 6
	couponMaxRetry  = 10
	tempPasswordLen = 8
)

type InfluencerService struct{}

func NewInfluencerService() *InfluencerService {
	return &InfluencerService{}
}

// GenerateCouponCode derives a coupon code from the influencer's name:
// the uppercase letters of the name truncated to 6 characters, followed
// by a random 0-99 suffix. "Asha Rao" yields e.g. "ASHARA7".
func (s *InfluencerService) GenerateCouponCode(name string) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix.WriteRune(r)
			if prefix.Len() == couponNameLen {
				break
			}
		}
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(100))
	return fmt.Sprintf("%s%d", prefix.String(), n.Int64())
}

func generateTempPassword() (string, error) {
	const alphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	out := make([]byte, tempPasswordLen)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// Create onboards an influencer and returns the one-time plaintext temp
// password alongside the stored row. Uniqueness of both email and coupon
// code is enforced by the schema; a coupon-code collision is retried with
// a fresh suffix up to 10 times and then reported as an error rather than
// proceeding with a colliding code.
func (s *InfluencerService) Create(req *models.CreateInfluencerRequest) (*models.Influencer, string, error) {
	db := models.GetDB()

	rate := req.CommissionRate
	if rate <= 0 {
		rate = 10
	}

	password, err := generateTempPassword()
	if err != nil {
		return nil, "", err
	}

	influencer := &models.Influencer{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		CommissionRate: rate,
		Active:         true,
	}
	if err := influencer.SetPassword(password); err != nil {
		return nil, "", err
	}

	var count int64
	if err := db.Model(&models.Influencer{}).Where("email = ?", influencer.Email).Count(&count).Error; err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrEmailTaken
	}

	for attempt := 0; attempt < couponMaxRetry; attempt++ {
		influencer.CouponCode = s.GenerateCouponCode(influencer.Name)
		err := db.Create(influencer).Error
		if err == nil {
			return influencer, password, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", err
		}
		// The email pre-check above raced with a concurrent insert, or
		// the coupon suffix collided. Re-check which constraint fired.
		if err := db.Model(&models.Influencer{}).Where("email = ?", influencer.Email).Count(&count).Error; err != nil {
			return nil, "", err
		}
		if count > 0 {
			return nil, "", ErrEmailTaken
		}
		influencer.ID = 0
	}
	return nil, "", ErrCouponExhausted
}

// Authenticate validates a coupon code + password pair against the
// active influencer it belongs to.
func (s *InfluencerService) Authenticate(couponCode, password string) (*models.Influencer, error) {
	influencer, err := s.FindActiveByCoupon(couponCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !influencer.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return influencer, nil
}

// FindActiveByCoupon looks up an active influencer by uppercased coupon code.
func (s *InfluencerService) FindActiveByCoupon(couponCode string) (*models.Influencer, error) {
	var influencer models.Influencer
	err := models.GetDB().
		Where("coupon_code = ? AND active = ?", strings.ToUpper(strings.TrimSpace(couponCode)), true).
		First(&influencer).Error
	if err != nil {
		return nil, err
	}
	return &influencer, nil
}

func (s *InfluencerService) GetByID(id uint) (*models.Influencer, error) {
	var influencer models.Influencer
	if err := models.GetDB().First(&influencer, id).Error; err != nil {
		return nil, err
	}
	return &influencer, nil
}

// SetActive flips the active flag; there is no deletion path for
// influencers, only deactivation.
func (s *InfluencerService) SetActive(id uint, active bool) error {
	result := models.GetDB().Model(&models.Influencer{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *InfluencerService) List() ([]models.Influencer, error) {
	var influencers []models.Influencer
	err := models.GetDB().Order("created_at DESC").Find(&influencers).Error
	return influencers, err
}

// StatsFor aggregates tracked orders for one influencer.
func (s *InfluencerService) StatsFor(influencerID uint) (*models.InfluencerStats, error) {
	db := models.GetDB()

	var stats models.InfluencerStats
	if err := db.Model(&models.InfluencerOrder{}).
		Where("influencer_id = ?", influencerID).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	row := db.Model(&models.InfluencerOrder{}).
		Where("influencer_id = ?", influencerID).
		Select("COALESCE(SUM(order_amount), 0), COALESCE(SUM(commission_amount), 0)").
		Row()
	if err := row.Scan(&stats.TotalSales, &stats.TotalCommission); err != nil {
		return nil, err
	}
	return &stats, nil
}
