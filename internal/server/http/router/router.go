package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmadash/internal/server/http/dto"
	"github.com/polkiloo/pharmadash/internal/server/http/handlers"
	"github.com/polkiloo/pharmadash/internal/server/http/middleware"
)

const eventsPath = "/api/events"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DashboardFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.MaxDecompressedBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{eventsPath})))

	authHandler := handlers.NewAuthHandler(facade)
	sessionHandler := handlers.NewSessionHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	medicineHandler := handlers.NewMedicineHandler(facade)
	eventHandler := handlers.NewEventHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/layout", middleware.OptionalAuth(facade), sessionHandler.Layout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/session", sessionHandler.Session)
	authed.PUT("/session/warehouse", sessionHandler.SelectWarehouse)
	authed.GET("/warehouse", sessionHandler.Warehouse)

	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	authed.GET("/orders/:id/history", orderHandler.History)

	authed.GET("/medicines", medicineHandler.List)
	authed.GET("/medicines/:id", medicineHandler.Get)
	authed.PUT("/medicines/:id", medicineHandler.Update)
	authed.DELETE("/medicines/:id", medicineHandler.Delete)

	authed.GET("/events", eventHandler.Stream)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	})

	return engine
}
