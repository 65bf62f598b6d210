package services

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/notesvault/notesvault-api/internal/models"
)

var couponPattern = regexp.MustCompile(`^[A-Z]{0,6}[0-9]{1,2}$`)

func TestGenerateCouponCode(t *testing.T) {
	svc := NewInfluencerService()

	tests := []struct {
		name       string
		wantPrefix string
	}{
		{name: "Asha Rao", wantPrefix: "ASHARA"},
		{name: "Bo Li", wantPrefix: "BOLI"},
		{name: "priya sharma", wantPrefix: "PRIYAS"},
		{name: "J. K. Verma", wantPrefix: "JKVERM"},
		{name: "42", wantPrefix: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := svc.GenerateCouponCode(tt.name)
			if !couponPattern.MatchString(code) {
				t.Errorf("GenerateCouponCode(%q) = %q, does not match %v", tt.name, code, couponPattern)
			}
			if !strings.HasPrefix(code, tt.wantPrefix) {
				t.Errorf("GenerateCouponCode(%q) = %q, want prefix %q", tt.name, code, tt.wantPrefix)
			}
		})
	}
}

func TestGenerateTempPassword(t *testing.T) {
	password, err := generateTempPassword()
	if err != nil {
		t.Fatalf("generateTempPassword() error = %v", err)
	}
	if len(password) != tempPasswordLen {
		t.Errorf("password length = %d, want %d", len(password), tempPasswordLen)
	}
}

func TestInfluencerCreate(t *testing.T) {
	setupTestDB(t)
	svc := NewInfluencerService()

	influencer, password, err := svc.Create(&models.CreateInfluencerRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if influencer.CommissionRate != 10 {
		t.Errorf("default commission rate = %v, want 10", influencer.CommissionRate)
	}
	if !strings.HasPrefix(influencer.CouponCode, "ASHARA") {
		t.Errorf("coupon code = %q, want ASHARA prefix", influencer.CouponCode)
	}
	if password == "" {
		t.Error("temp password not returned")
	}
	if !influencer.CheckPassword(password) {
		t.Error("stored hash does not match returned password")
	}
}

func TestInfluencerCreateDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	svc := NewInfluencerService()

	createTestInfluencer(t, "Asha Rao", "asha@example.com", 0)

	_, _, err := svc.Create(&models.CreateInfluencerRequest{
		Name:  "Asha R",
		Email: "asha@example.com",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Create() error = %v, want ErrEmailTaken", err)
	}

	var count int64
	models.GetDB().Model(&models.Influencer{}).Count(&count)
	if count != 1 {
		t.Errorf("influencer rows = %d, want 1", count)
	}
}

func TestAuthenticate(t *testing.T) {
	setupTestDB(t)
	svc := NewInfluencerService()

	influencer, password, err := svc.Create(&models.CreateInfluencerRequest{
		Name:  "Priya Sharma",
		Email: "priya@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Authenticate(strings.ToLower(influencer.CouponCode), password)
	if err != nil {
		t.Fatalf("Authenticate() with lowercased code error = %v", err)
	}
	if got.ID != influencer.ID {
		t.Errorf("Authenticate() returned influencer %d, want %d", got.ID, influencer.ID)
	}

	if _, err := svc.Authenticate(influencer.CouponCode, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() with bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate("NOSUCH1", password); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() with unknown code error = %v, want ErrInvalidCredentials", err)
	}

	// Deactivated influencers can no longer log in.
	if err := svc.SetActive(influencer.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if _, err := svc.Authenticate(influencer.CouponCode, password); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() after deactivation error = %v, want ErrInvalidCredentials", err)
	}
}
