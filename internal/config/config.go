package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	ServerPort          string
	GinMode             string
	AuthJWTSecret       string
	InfluencerJWTSecret string
	RazorpayKeyID       string
	RazorpayKeySecret   string
	RazorpayBaseURL     string
	AdminEmails         []string
}

var AppConfig *Config

// Load reads configuration from the environment. Secrets have no
// fallback values: a missing secret fails startup instead of silently
// running with a known-weak default.
func Load() error {
	_ = godotenv.Load()

	serverPort := getEnv("PORT", "")
	if serverPort == "" {
		serverPort = getEnv("SERVER_PORT", "8080")
	}

	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "notesvault"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		ServerPort:          serverPort,
		GinMode:             getEnv("GIN_MODE", "debug"),
		AuthJWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		InfluencerJWTSecret: os.Getenv("INFLUENCER_JWT_SECRET"),
		RazorpayKeyID:       os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:   os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:     getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		AdminEmails:         splitList(os.Getenv("ADMIN_EMAILS")),
	}

	for name, value := range map[string]string{
		"AUTH_JWT_SECRET":       cfg.AuthJWTSecret,
		"INFLUENCER_JWT_SECRET": cfg.InfluencerJWTSecret,
		"RAZORPAY_KEY_ID":       cfg.RazorpayKeyID,
		"RAZORPAY_KEY_SECRET":   cfg.RazorpayKeySecret,
	} {
		if value == "" {
			return fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	AppConfig = cfg
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func (c *Config) GetDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
