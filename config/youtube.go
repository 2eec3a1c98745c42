package config

import (
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var defaultYouTubeScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
	"openid",
}

// YouTubeOAuth собирает конфигурацию OAuth из переменных окружения.
// Валидацию обязательных полей делает services/youtube.NewFlow.
func YouTubeOAuth() *oauth2.Config {
	scopes := defaultYouTubeScopes
	if raw := os.Getenv("YOUTUBE_SCOPES"); raw != "" {
		scopes = strings.Fields(raw)
	}

	return &oauth2.Config{
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}
