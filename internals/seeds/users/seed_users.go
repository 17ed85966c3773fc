package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	authService "staffhub_backend/internals/features/users/auth/service"
	"staffhub_backend/internals/features/users/user/model"
)

type UserSeed struct {
	FullName string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Position string `json:"position"`
	JoinedAt string `json:"joined_at"`
}

// SeedUsersFromJSON inserts accounts from a JSON file, skipping emails
// that already exist so the seeder stays re-runnable.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading user seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed file: %v", err)
	}

	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Failed to decode seed JSON: %v", err)
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))

		var existing model.UserModel
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' already exists, skipped.", email)
			continue
		}

		hashedPassword, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Failed to hash password for '%s': %v", email, err)
			continue
		}

		newUser := model.UserModel{
			FullName: strings.TrimSpace(data.FullName),
			Email:    email,
			Password: hashedPassword,
			Role:     data.Role,
			Position: data.Position,
		}
		if data.JoinedAt != "" {
			if t, err := time.Parse("2006-01-02", data.JoinedAt); err == nil {
				newUser.JoinedAt = &t
			}
		}
		if err := newUser.Validate(); err != nil {
			log.Printf("❌ Invalid seed user '%s': %v", email, err)
			continue
		}

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Failed to insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Inserted user '%s'", email)
		}
	}
}
