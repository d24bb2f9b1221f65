package database

import (
	"fmt"
	"time"

	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens Postgres with retries and migrates the pet tables.
func Connect(dsn string, logger *zap.Logger) error {
	var err error
	for i := 0; i < 10; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		logger.Warn("PostgreSQL connection failed", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	if err := DB.AutoMigrate(
		&models.Pet{},
		&models.SavedProduct{},
		&models.Livestock{},
		&models.FeedRecord{},
		&models.RecallAlert{},
	); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
