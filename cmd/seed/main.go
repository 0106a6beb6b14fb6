package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/yumeno/gachapon-api/pkg/auth"
	"github.com/yumeno/gachapon-api/pkg/database"
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/database/repository"
)

// Seeds (or promotes) the admin account from ADMIN_EMAIL / ADMIN_PASS.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPass := os.Getenv("ADMIN_PASS")
	if adminPass == "" {
		adminPass = "Admin123!"
	}

	db, err := database.NewGormDB(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL database: %v", err)
	}
	defer sqlDB.Close()

	hash, err := auth.HashPassword(adminPass)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	users := repository.NewUserRepository(db)
	existing, err := users.GetUserByEmail(adminEmail)
	if err != nil {
		log.Fatalf("Failed to look up admin user: %v", err)
	}

	if existing != nil {
		if err := users.PromoteToAdmin(existing.ID, hash); err != nil {
			log.Fatalf("Failed to promote user to admin: %v", err)
		}
		log.Printf("Updated existing user to admin: %s", adminEmail)
		return
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		DisplayName:  "Administrator",
		Role:         "admin",
	}
	if err := users.CreateUser(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Created admin user id=%s email=%s", admin.ID, adminEmail)
}
