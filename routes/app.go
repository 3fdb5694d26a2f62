package routes

import (
	"errors"
	"time"

	config "github.com/anjiri1684/studio_tracker/configs"
	"github.com/anjiri1684/studio_tracker/handlers"
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/storage"
	"github.com/anjiri1684/studio_tracker/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the collaborators wired into the HTTP app.
type Deps struct {
	Config  config.App
	Store   storage.Storage
	Handler *handlers.Handler
	Auth    middleware.Authenticator
	// LimiterStorage backs the rate limiter; nil keeps counters in memory.
	LimiterStorage fiber.Storage
}

func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "Studio Tracker",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		JSONDecoder:   handlers.StrictJSONDecoder,
		ErrorHandler:  errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  d.Config.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   d.Config.TimeZone.String(),
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		Output:     utils.Logger.Out,
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", d.Handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(middleware.MetricsHandler()))

	api := app.Group("/api")
	if d.Config.RateLimitPerMin > 0 {
		api.Use(middleware.RateLimiter(d.Config.RateLimitPerMin, d.LimiterStorage))
	}
	if d.Config.AuthMode == "jwt" {
		api.Use(middleware.Protected(d.Config.JWTSecret))
	}
	api.Use(middleware.Tenant(d.Auth, d.Store))

	AuthRoutes(api, d.Handler)
	DashboardRoutes(api, d.Handler)
	StudentRoutes(api, d.Handler)
	AttendanceRoutes(api, d.Handler)
	PaymentRoutes(api, d.Handler)
	ReportRoutes(api, d.Handler)
	UploadRoutes(api, d.Handler)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		utils.Logger.WithError(err).Errorf("[ERROR] Path: %s | Method: %s", c.Path(), c.Method())
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}
