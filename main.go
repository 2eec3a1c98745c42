package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"videotube-backend/config"
	"videotube-backend/controllers/authentication"
	"videotube-backend/controllers/httpCors"
	videosctl "videotube-backend/controllers/videos"
	"videotube-backend/models/users"
	"videotube-backend/models/videos"
)

func main() {
	// .env опционален, в проде переменные приходят из окружения
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := config.InitDB(); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&videos.Video{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", videosctl.Home)
	mux.HandleFunc("GET /mis-videos/", videosctl.MyVideos)
	mux.HandleFunc("GET /video/{id}/", videosctl.Detail)

	mux.HandleFunc("GET /subir/", videosctl.Upload)
	mux.HandleFunc("POST /subir/", videosctl.Upload)

	mux.HandleFunc("GET /login/", authentication.HandleLogin)
	mux.HandleFunc("GET /logout/", authentication.HandleLogout)
	mux.HandleFunc("GET /oauth/authorize/", authentication.HandleAuthorize)
	mux.HandleFunc("GET /oauth/callback/", authentication.HandleCallback)
	// второй путь исторически прописан в консоли Google как redirect URI
	mux.HandleFunc("GET /youtube/callback/", authentication.HandleCallback)

	handler := httpCors.CorsSettings().Handler(mux)

	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
