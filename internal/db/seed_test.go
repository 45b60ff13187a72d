package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestDemoUsersFixtures(t *testing.T) {
	users, err := DemoUsers()
	if err != nil {
		t.Fatalf("DemoUsers failed: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("Expected at least one fixture account")
	}

	seen := make(map[string]bool)
	for _, user := range users {
		if seen[user.Email] {
			t.Errorf("Duplicate fixture email: %s", user.Email)
		}
		seen[user.Email] = true

		if user.Password == "password123" {
			t.Errorf("Password stored in plain text for %s", user.Email)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
			t.Errorf("Password hash for %s does not verify: %v", user.Email, err)
		}

		if !user.DefaultLogType.Valid() {
			t.Errorf("Invalid default log type for %s: %s", user.Email, user.DefaultLogType)
		}
		if !user.DefaultDepth.Valid() {
			t.Errorf("Invalid default depth for %s: %s", user.Email, user.DefaultDepth)
		}
	}
}
