package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/logsage/backend/internal/db"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// ensureDatabase creates the target database when it does not exist yet,
// connecting to the maintenance database to do so.
func ensureDatabase() error {
	name := os.Getenv("DB_NAME")
	if name == "" {
		return fmt.Errorf("DB_NAME is not set")
	}

	adminDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	conn, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return fmt.Errorf("failed to open admin connection: %w", err)
	}
	defer conn.Close()

	var exists bool
	if err := conn.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	// Database names cannot be bound as parameters.
	if _, err := conn.Exec(fmt.Sprintf("CREATE DATABASE %q", name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	log.Printf("✅ Created database %s", name)
	return nil
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := ensureDatabase(); err != nil {
		log.Fatalf("Database bootstrap failed: %v", err)
	}

	// Connect to database
	db.Connect()

	// Run migrations
	log.Println("Running database migrations...")
	db.AutoMigrate()

	log.Println("✅ Database migrations completed successfully!")
}
