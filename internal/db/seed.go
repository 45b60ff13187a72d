package db

import (
	"fmt"
	"log"

	"github.com/logsage/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixtureUser struct {
	Email           string
	Password        string
	DefaultSanitize bool
	DefaultLogType  models.LogType
	DefaultDepth    models.Depth
}

var fixtureUsers = []fixtureUser{
	{Email: "alice@example.com", Password: "password123", DefaultSanitize: true, DefaultLogType: models.LogTypeJava, DefaultDepth: models.DepthFast},
	{Email: "bob@example.com", Password: "password123", DefaultSanitize: true, DefaultLogType: models.LogTypeSpring, DefaultDepth: models.DepthDeep},
	{Email: "carol@example.com", Password: "password123", DefaultSanitize: false, DefaultLogType: models.LogTypeJava, DefaultDepth: models.DepthFast},
}

// DemoUsers returns the development fixture accounts with bcrypt-hashed
// passwords, ready to insert.
func DemoUsers() ([]models.User, error) {
	users := make([]models.User, 0, len(fixtureUsers))
	for _, fu := range fixtureUsers {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(fu.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", fu.Email, err)
		}
		users = append(users, models.User{
			Email:           fu.Email,
			Password:        string(hashedPassword),
			DefaultSanitize: fu.DefaultSanitize,
			DefaultLogType:  fu.DefaultLogType,
			DefaultDepth:    fu.DefaultDepth,
		})
	}
	return users, nil
}

// Seed creates the development fixture accounts, skipping any email that
// already exists. Idempotent.
func Seed(gdb *gorm.DB) error {
	users, err := DemoUsers()
	if err != nil {
		return err
	}

	for _, user := range users {
		var existing models.User
		if err := gdb.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			log.Printf("⚠️  User already exists: %s", user.Email)
			continue
		}
		if err := gdb.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Email, err)
		}
		log.Printf("✅ Created user: %s", user.Email)
	}
	return nil
}
