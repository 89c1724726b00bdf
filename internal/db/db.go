package db

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"innkeeper-backend/config"
	"innkeeper-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.RoomCategory{},
		&model.Room{},
		&model.Guest{},
		&model.Booking{},
		&model.CleaningTask{},
		&model.Vehicle{},
		&model.UsageRecord{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// SeedAdmin creates the default administrator account when no administrator
// exists yet. The seeded account must change its password on first login.
func SeedAdmin(db *gorm.DB, authCfg *config.AuthConfig) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("role = ?", model.RoleAdministrator).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count administrators: %w", err)
	}
	if count > 0 {
		return nil
	}

	cost := authCfg.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(authCfg.BootstrapPassword), cost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	now := time.Now()
	admin := model.User{
		Login:              authCfg.BootstrapLogin,
		PasswordHash:       string(hash),
		Role:               model.RoleAdministrator,
		MustChangePassword: true,
		LastLoginAt:        &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}
	log.Printf("Seeded administrator account %q (password change required on first login)", admin.Login)
	return nil
}
