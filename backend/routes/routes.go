package routes

import (
	"tracker/backend/config"
	"tracker/backend/controllers"
	"tracker/backend/middleware"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with middleware, metrics and API routes.
func NewApp(svc *services.Services, cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tracker",
		ErrorHandler:          utils.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(middleware.Recovery(logger))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Server is running"})
	})

	SetupRoutes(app, svc, cfg)
	return app
}

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(svc)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	app.Get("/api/auth/profile", authMiddleware, authController.GetProfile)
	app.Put("/api/auth/profile", authMiddleware, authController.UpdateProfile)

	// Daily entry routes
	dailyController := controllers.NewDailyController(svc)
	daily := app.Group("/api/daily", authMiddleware)
	daily.Get("/entries", dailyController.GetEntries)
	daily.Get("/today", dailyController.GetToday)
	daily.Post("/entries", dailyController.CreateEntry)
	daily.Get("/stats", dailyController.GetStats)

	// Heatmap & habit routes
	heatmapController := controllers.NewHeatmapController(svc)
	heatmap := app.Group("/api/heatmap", authMiddleware)
	heatmap.Get("/heatmap", heatmapController.GetHeatmap)
	heatmap.Get("/habits", heatmapController.GetHabits)
	heatmap.Post("/habits", heatmapController.UpdateHabits)
	heatmap.Get("/stats", heatmapController.GetWeeklyStats)
}
