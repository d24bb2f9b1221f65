package database

import (
	"fmt"
	"time"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Settings describes the Postgres connection.
type Settings struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	TimeZone string
}

// DSN renders the settings as a libpq connection string.
func (s Settings) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		s.Host, s.User, s.Password, s.Name, s.Port, s.SSLMode, s.TimeZone,
	)
}

func ConnectPostgres(s Settings, logger *zap.Logger, autoMigrateModels ...interface{}) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(s.DSN()), &gorm.Config{TranslateError: true})
		if err == nil {
			logger.Info("Connected to PostgreSQL", zap.String("host", s.Host), zap.String("db", s.Name))
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, fmt.Errorf("failed to get database instance: %w", dbErr)
			}
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(5 * time.Minute)

			if len(autoMigrateModels) > 0 {
				if err := db.AutoMigrate(autoMigrateModels...); err != nil {
					return nil, fmt.Errorf("AutoMigrate failed: %w", err)
				}
			}
			return db, nil
		}
		logger.Warn("PostgreSQL connection failed", zap.Int("attempt", i+1), zap.Int("max", 10), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

// Connect opens the catalog database and migrates its tables.
func Connect(s Settings, logger *zap.Logger) error {
	var err error
	DB, err = ConnectPostgres(s, logger,
		&models.Product{},
		&models.ProductReview{},
		&models.ProductRecall{},
		&models.BlacklistEntry{},
		&models.ScanHistory{},
	)
	return err
}

// Close closes the database connection gracefully
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
