package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wize-house/api-go/models"
)

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	db.AutoMigrate(&models.User{}, &models.Activity{}, &models.RefreshToken{})

	return db
}

// EnsureAdmin promotes the member named in ADMIN_NICKNAME, if it is set and
// registered. Lets a fresh deployment get its first admin without SQL access.
func EnsureAdmin(db *gorm.DB) {
	nickname := os.Getenv("ADMIN_NICKNAME")
	if nickname == "" {
		return
	}
	db.Model(&models.User{}).Where("nickname = ?", nickname).Update("role", models.RoleAdmin)
}
