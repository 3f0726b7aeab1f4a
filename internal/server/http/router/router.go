package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/fundraiser/internal/config"
	"github.com/polkiloo/fundraiser/internal/pkg/metrics"
	"github.com/polkiloo/fundraiser/internal/server/http/handlers"
	"github.com/polkiloo/fundraiser/internal/server/http/middleware"
)

const metricsPath = "/metrics"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PortalFacade, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RequestMetrics(m))
	engine.Use(middleware.Compression(metricsPath))

	authHandler := handlers.NewAuthHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	donationHandler := handlers.NewDonationHandler(facade)
	rewardHandler := handlers.NewRewardHandler(facade)
	leaderboardHandler := handlers.NewLeaderboardHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET(metricsPath, gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/rewards", rewardHandler.Tiers)
	api.GET("/leaderboard", leaderboardHandler.List)
	api.GET("/referrals/:code", accountHandler.Referral)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/me", accountHandler.Me)
	authed.POST("/donations", donationHandler.Record)
	authed.GET("/donations", donationHandler.History)
	authed.GET("/donations/summary", donationHandler.Summary)
	authed.GET("/rewards/progress", rewardHandler.Progress)
	authed.GET("/leaderboard/me", leaderboardHandler.Me)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.AdminToken))
	admin.PUT("/accounts/:id/total", donationHandler.SetTotal)

	return engine
}
