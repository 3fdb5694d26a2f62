package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/studio_tracker/configs"
	"github.com/anjiri1684/studio_tracker/database"
	"github.com/anjiri1684/studio_tracker/handlers"
	"github.com/anjiri1684/studio_tracker/jobs"
	"github.com/anjiri1684/studio_tracker/middleware"
	"github.com/anjiri1684/studio_tracker/notifications"
	"github.com/anjiri1684/studio_tracker/routes"
	"github.com/anjiri1684/studio_tracker/services"
	"github.com/anjiri1684/studio_tracker/storage"
	"github.com/anjiri1684/studio_tracker/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	utils.ConfigureLogger(cfg.LogLevel, cfg.IsProduction())

	db, err := database.ConnectDB(cfg)
	if err != nil {
		utils.Logger.Fatalf("🔥 %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.Logger.Fatalf("🔥 %v", err)
	}

	store := storage.NewDatabaseStorage(db, storage.WithLocation(cfg.TimeZone))

	auth, err := newAuthenticator(cfg)
	if err != nil {
		utils.Logger.Fatalf("🔥 %v", err)
	}

	uploads, err := services.NewUploadSigner(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		utils.Logger.Warnf("⚠️ Uploads disabled: %v", err)
	}

	var limiterStorage fiber.Storage
	if cfg.RedisAddr != "" {
		redisStorage := database.NewRedisStorage(cfg.RedisAddr)
		if redisStorage.Healthy(context.Background()) {
			limiterStorage = redisStorage
			defer redisStorage.Close()
			utils.Logger.Info("✅ Rate limiter using redis")
		} else {
			utils.Logger.Warn("⚠️ Redis unreachable, rate limiter falls back to memory")
		}
	}

	c := cron.New(cron.WithLocation(cfg.TimeZone))
	if mailer := notifications.NewBrevoService(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName); mailer != nil {
		if err := jobs.NewOverdueReminder(store, mailer).Schedule(c, cfg.OverdueReminderCron); err != nil {
			utils.Logger.Fatalf("🔥 %v", err)
		}
	}
	c.Start()
	defer c.Stop()

	app := routes.NewApp(routes.Deps{
		Config:         cfg,
		Store:          store,
		Handler:        handlers.NewHandler(store, services.NewReportService(store), uploads),
		Auth:           auth,
		LimiterStorage: limiterStorage,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		utils.Logger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			utils.Logger.WithError(err).Error("🔥 Server shutdown failed")
		}
	}()

	utils.Logger.Infof("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Fatalf("🔥 Server failed to start: %v", err)
	}
}

func newAuthenticator(cfg config.App) (middleware.Authenticator, error) {
	if cfg.AuthMode == "jwt" {
		if cfg.JWTSecret == "" {
			return nil, errors.New("AUTH_MODE=jwt requires JWT_SECRET")
		}
		return middleware.JWTAuthenticator{}, nil
	}

	auth, err := middleware.NewMockAuthenticator(cfg.MockInstructorID, cfg.MockInstructorEmail, cfg.MockInstructorFirst, cfg.MockInstructorLast)
	if err != nil {
		return nil, err
	}
	utils.Logger.Warn("⚠️ Using mock authentication, every request acts as the same instructor")
	return auth, nil
}
