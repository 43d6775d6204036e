package database

import (
	"fmt"
	"time"

	"github.com/tasktrackr/task-tracker-api/internal/config"
	"github.com/tasktrackr/task-tracker-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the configured database and tunes the connection pool.
func Connect(cfg *config.Config) error {
	var dial gorm.Dialector
	switch cfg.DB.Driver {
	case "mysql":
		dial = mysql.Open(cfg.DB.DSN)
	case "postgres":
		dial = postgres.Open(cfg.DB.DSN)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetimeMin) * time.Minute)

	DB = db
	return nil
}

// Migrate runs schema migrations for all models.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
