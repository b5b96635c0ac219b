package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nordalpha/fiindostats/config"
	"github.com/nordalpha/fiindostats/models"
)

var DB *gorm.DB

func InitDB(cfg config.DatabaseConfig) error {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// Auto migrate the schema
	if err := DB.AutoMigrate(&models.TickerMetrics{}, &models.IndustrySummary{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Apply database optimizations
	if err := OptimizeIndexes(DB); err != nil {
		log.Printf("Warning: Failed to optimize indexes: %v", err)
	}

	log.Println("Database connected and migrated successfully")
	return nil
}
