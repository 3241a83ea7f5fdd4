package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/beatstore/internal/access"
	"github.com/polkiloo/beatstore/internal/domain/repository"
	"github.com/polkiloo/beatstore/internal/server/http/handlers"
	"github.com/polkiloo/beatstore/internal/server/http/middleware"
)

const collaborationStreamPath = "/api/admin/collaborations/stream"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, health repository.HealthChecker, gate *access.Gate, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Compression(collaborationStreamPath))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	collabHandler := handlers.NewCollaborationHandler(facade)
	statsHandler := handlers.NewStatsHandler(facade)
	newsletterHandler := handlers.NewNewsletterHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	authRequired := middleware.AuthRequired(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authRequired, authHandler.Me)

	beats := api.Group("/beats")
	beats.GET("", catalogHandler.List)
	beats.GET("/featured", catalogHandler.Featured)
	beats.GET("/genres", catalogHandler.Genres)
	beats.GET("/:id", catalogHandler.Get)

	api.POST("/cart/quote", catalogHandler.Quote)
	api.POST("/newsletter", newsletterHandler.Subscribe)
	api.GET("/downloads/:order/:beat", orderHandler.Download)

	userAuth := api.Group("")
	userAuth.Use(authRequired)
	userAuth.POST("/orders", orderHandler.Checkout)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:id", orderHandler.Get)
	userAuth.PUT("/account/password", authHandler.ChangePassword)
	userAuth.GET("/me/summary", statsHandler.Summary)
	userAuth.GET("/me/collaborations", collabHandler.Mine)

	admin := api.Group("/admin")
	admin.Use(authRequired, middleware.RequireAdmin(gate))
	admin.GET("/orders/recent", orderHandler.Recent)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/stats", statsHandler.Dashboard)
	admin.GET("/subscribers", newsletterHandler.List)
	admin.PATCH("/users/:id/role", authHandler.ChangeRole)

	collabs := admin.Group("/collaborations")
	collabs.GET("", collabHandler.List)
	collabs.POST("", collabHandler.Create)
	collabs.GET("/stats", collabHandler.Stats)
	collabs.GET("/stream", collabHandler.Stream)
	collabs.GET("/:id", collabHandler.Get)
	collabs.PATCH("/:id", collabHandler.Update)
	collabs.DELETE("/:id", collabHandler.Delete)
	collabs.PATCH("/:id/status", collabHandler.UpdateStatus)
	collabs.PATCH("/:id/payment", collabHandler.RecordPayment)

	return engine
}
