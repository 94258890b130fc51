package main

import (
	"fmt"
	"log"
	"os"

	"github.com/123NE456/kb-booking-app/internal/config"
	"github.com/123NE456/kb-booking-app/internal/database"
	"github.com/123NE456/kb-booking-app/internal/domain"
	"github.com/123NE456/kb-booking-app/internal/util"
)

func main() {
	// Load configuration
	_, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	db := database.GetDB()

	username := envOrDefault("ADMIN_USERNAME", "admin")
	email := envOrDefault("ADMIN_EMAIL", "admin@karenbraids.com")
	password := os.Getenv("ADMIN_PASSWORD")
	usingDefaultPassword := password == ""
	if usingDefaultPassword {
		password = "admin"
	}

	// Check if the account already exists
	var existingUser domain.User
	if err := db.Where("username = ?", username).First(&existingUser).Error; err == nil {
		fmt.Printf("User %q already exists!\n", username)
		return
	}

	// Create admin user
	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fullName := "Salon Administrator"
	adminUser := domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		FullName:       &fullName,
		IsActive:       true,
		IsAdmin:        true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Println("Admin user created successfully!")
	fmt.Printf("Username: %s\n", username)
	if usingDefaultPassword {
		fmt.Println("ADMIN_PASSWORD not set; the password is 'admin'.")
		fmt.Println("Please change it after first login!")
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
