package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "auth-secret")
	t.Setenv("INFLUENCER_JWT_SECRET", "influencer-secret")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "gateway-secret")
}

func TestLoadRequiresSecrets(t *testing.T) {
	secrets := []string{"AUTH_JWT_SECRET", "INFLUENCER_JWT_SECRET", "RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET"}

	for _, missing := range secrets {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			err := Load()
			if err == nil {
				t.Fatalf("Load() succeeded with %s unset", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("Load() error = %v, want mention of %s", err, missing)
			}
		})
	}
}

func TestLoadAdminEmails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAILS", "Admin@NotesVault.in, ops@notesvault.in ,")

	if err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		email string
		want  bool
	}{
		{"admin@notesvault.in", true},
		{"ADMIN@notesvault.in", true},
		{"ops@notesvault.in", true},
		{"someone@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := AppConfig.IsAdminEmail(tt.email); got != tt.want {
			t.Errorf("IsAdminEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
