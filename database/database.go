package database

import (
	"context"
	"fmt"
	"time"

	config "github.com/anjiri1684/studio_tracker/configs"
	"github.com/anjiri1684/studio_tracker/models"
	"github.com/anjiri1684/studio_tracker/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres pool described by cfg.DatabaseURL.
func ConnectDB(cfg config.App) (*gorm.DB, error) {
	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: false,
		Logger: logger.New(utils.Logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	utils.Logger.Info("✅ Database connected successfully")
	return db, nil
}

// Migrate creates or updates the tables. Users come first so that the
// student foreign key has a target.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.ClassSchedule{},
		&models.AttendanceRecord{},
		&models.PaymentRecord{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	utils.Logger.Info("✅ Database migration successful")
	return nil
}

// Ping checks connectivity within the deadline carried by ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
