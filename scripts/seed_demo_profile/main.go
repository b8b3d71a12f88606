package main

import (
	"fmt"
	"log"
	"os"

	"linko/models"
	"linko/pkg/profile"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Seeds a demo account with a populated profile so a fresh database has
// something to render at /<username>.
func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	const username = "demo"
	email := profile.SyntheticEmail(username)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		hpw, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt: %v", err)
		}
		user = models.User{Email: email, HashedPassword: hpw, DisplayName: "Demo"}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("create demo user: %v", err)
		}
	}

	var existing models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		fmt.Printf("demo profile already present (id=%d)\n", existing.ID)
		return
	}

	prof := models.Profile{
		UserID:   user.ID,
		Username: username,
		Bio:      "all my links in one place",
		Links: models.JSON(`[
			{"id":"1700000000000","title":"Portfolio","url":"https://example.com"},
			{"id":"1700000000001","title":"Blog","url":"https://blog.example.com"}
		]`),
		SocialLinks: models.JSON(`[
			{"platform":"Github","url":"https://github.com/demo"},
			{"platform":"Twitter","url":"https://twitter.com/demo"}
		]`),
	}
	if err := db.Create(&prof).Error; err != nil {
		log.Fatalf("create demo profile: %v", err)
	}
	fmt.Printf("seeded demo profile id=%d (login: demo / demo-password)\n", prof.ID)
}
