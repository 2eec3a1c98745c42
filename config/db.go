package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	Store *sessions.CookieStore
)

const SessionName = "videotube-session"

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "something-very-secret"
	}
	Store = sessions.NewCookieStore([]byte(secret))
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 8,
		HttpOnly: true,
		// Lax, иначе браузер не пришлет cookie на редиректе с OAuth-провайдера
		SameSite: http.SameSiteLaxMode,
	}
}

func InitDB() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	DB = db
	return nil
}
