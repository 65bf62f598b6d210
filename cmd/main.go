package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notesvault/notesvault-api/internal/config"
	"github.com/notesvault/notesvault-api/internal/handlers"
	"github.com/notesvault/notesvault-api/internal/logging"
	"github.com/notesvault/notesvault-api/internal/middleware"
	"github.com/notesvault/notesvault-api/internal/models"
	"github.com/notesvault/notesvault-api/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(config.AppConfig.GinMode == "release"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.L().Sync()

	if err := models.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	gin.SetMode(config.AppConfig.GinMode)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(monitoring.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/health", func(c *gin.Context) {
		sqlDB, err := models.GetDB().DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	influencerAdminHandler := handlers.NewInfluencerAdminHandler()
	influencerAuthHandler := handlers.NewInfluencerAuthHandler()
	couponHandler := handlers.NewCouponHandler()
	orderHandler := handlers.NewOrderHandler()
	paymentHandler := handlers.NewPaymentHandler()
	downloadHandler := handlers.NewDownloadHandler()
	historyHandler := handlers.NewHistoryHandler()
	materialHandler := handlers.NewMaterialHandler()
	systemConfigHandler := handlers.NewSystemConfigHandler()

	api := r.Group("/api/v1")
	{
		// Public: catalog, coupon checks, checkout attribution.
		api.GET("/materials", materialHandler.List)
		api.GET("/materials/:id", materialHandler.Get)
		api.POST("/coupons/verify", couponHandler.Verify)
		api.POST("/orders/track", orderHandler.Track)
		api.POST("/influencer/login", influencerAuthHandler.Login)

		// Influencer dashboard.
		influencer := api.Group("/influencer")
		influencer.Use(middleware.InfluencerAuthMiddleware())
		{
			influencer.GET("/me", influencerAuthHandler.Me)
		}

		// Logged-in users.
		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.POST("/payments/orders", paymentHandler.CreateOrder)
			auth.POST("/payments/verify", paymentHandler.Verify)
			auth.POST("/downloads/track", downloadHandler.Track)
			auth.GET("/me/purchases", historyHandler.Purchases)
			auth.GET("/me/downloads", historyHandler.Downloads)
		}

		// Admin, gated on the email allow-list.
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

			admin.GET("/config/gateway", systemConfigHandler.GetGatewayConfig)
			admin.PUT("/config/gateway", systemConfigHandler.UpdateGatewayConfig)
		}
	}

	log.Printf("NotesVault API starting on port %s", config.AppConfig.ServerPort)
	if err := r.Run(":" + config.AppConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
