package main

import (
	"log"

	"github.com/logsage/backend/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()
	db.AutoMigrate()

	if err := db.Seed(db.DB); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}
