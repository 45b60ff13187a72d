package db

import (
	"fmt"
	"log"
	"os"

	"github.com/logsage/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DSN builds the Postgres connection string from the environment.
func DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)
}

// Connect initializes the database connection. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey.
func Connect() {
	var err error
	DB, err = gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Database connected successfully")
}

// AutoMigrate runs database migrations in dependency order.
func AutoMigrate() {
	migrations := []struct {
		name  string
		model any
	}{
		{"User", &models.User{}},
		{"AnalysisReport", &models.AnalysisReport{}},
		{"AnalysisCache", &models.AnalysisCache{}},
		{"DailyUsage", &models.DailyUsage{}},
		{"Todo", &models.Todo{}},
	}

	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			log.Printf("%s migration failed: %v", m.name, err)
			return
		}
		log.Printf("✅ %s table migrated successfully", m.name)
	}

	log.Println("✅ All database migrations completed successfully")
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
