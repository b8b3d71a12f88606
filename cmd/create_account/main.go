package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"linko/models"
	"linko/pkg/profile"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_account <username> <password> [name]")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]
	name := ""
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	email := profile.SyntheticEmail(username)

	// check existing
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("account %s already exists (id=%d)\n", username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Email: email, HashedPassword: hpw, DisplayName: name}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create account: %v", err)
	}
	// create the profile row with editor defaults
	prof := models.Profile{
		UserID:      user.ID,
		Username:    username,
		Bio:         profile.DefaultEditorBio,
		Links:       models.JSON("[]"),
		SocialLinks: models.JSON("[]"),
	}
	if err := db.Create(&prof).Error; err != nil {
		log.Printf("warning: failed to create profile: %v", err)
	}
	fmt.Printf("created account %s id=%d\n", username, user.ID)
}
