package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/middleware"
	"github.com/notesvault/notesvault-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	models.DB = db

	config.AppConfig = &config.Config{
		GinMode:             "test",
		AuthJWTSecret:       "test-auth-secret",
		InfluencerJWTSecret: "test-influencer-secret",
		RazorpayKeyID:       "rzp_test_key",
		RazorpayKeySecret:   "test-gateway-secret",
		RazorpayBaseURL:     "http://gateway.invalid",
		AdminEmails:         []string{"admin@notesvault.in"},
	}

	influencerAdminHandler := NewInfluencerAdminHandler()
	influencerAuthHandler := NewInfluencerAuthHandler()
	couponHandler := NewCouponHandler()
	orderHandler := NewOrderHandler()
	paymentHandler := NewPaymentHandler()
	downloadHandler := NewDownloadHandler()
	historyHandler := NewHistoryHandler()
	materialHandler := NewMaterialHandler()

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/materials", materialHandler.List)
		api.GET("/materials/:id", materialHandler.Get)
		api.POST("/coupons/verify", couponHandler.Verify)
		api.POST("/orders/track", orderHandler.Track)
		api.POST("/influencer/login", influencerAuthHandler.Login)

		influencer := api.Group("/influencer")
		influencer.Use(middleware.InfluencerAuthMiddleware())
		influencer.GET("/me", influencerAuthHandler.Me)

		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.POST("/payments/orders", paymentHandler.CreateOrder)
			auth.POST("/payments/verify", paymentHandler.Verify)
			auth.POST("/downloads/track", downloadHandler.Track)
			auth.GET("/me/purchases", historyHandler.Purchases)
			auth.GET("/me/downloads", historyHandler.Downloads)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.POST("/influencers", influencerAdminHandler.Create)
			admin.GET("/influencers", influencerAdminHandler.List)
			admin.PATCH("/influencers/:id/status", influencerAdminHandler.UpdateStatus)
			admin.GET("/influencers/export", influencerAdminHandler.ExportCSV)

			admin.POST("/materials", materialHandler.Create)
			admin.PUT("/materials/:id", materialHandler.Update)
			admin.DELETE("/materials/:id", materialHandler.Delete)
		}
	}
	return r
}

// userToken forges a session token the way the identity provider would
// issue it: HS256 over the shared auth secret with the user id as subject.
func userToken(t *testing.T, sub, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.AuthJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func seedMaterial(t *testing.T, title string, price float64, free bool) *models.Material {
	t.Helper()
	material := &models.Material{Title: title, Subject: "physics", Price: price, IsFree: free}
	if err := models.GetDB().Create(material).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
	return material
}

func seedInfluencer(t *testing.T, r *gin.Engine, name, email string) (couponCode, tempPassword string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/influencers",
		userToken(t, "admin-1", "admin@notesvault.in"),
		gin.H{"name": name, "email": email})
	if w.Code != http.StatusOK {
		t.Fatalf("seed influencer: status %d body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	influencer := body["influencer"].(map[string]interface{})
	return influencer["coupon_code"].(string), body["temp_password"].(string)
}
