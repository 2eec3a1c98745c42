package httpCors

import (
	"github.com/rs/cors"
)

func CorsSettings() *cors.Cors {
	c := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST"},
		AllowedOrigins:   []string{"*"}, // Установите конкретные домены, если нужно ограничить доступ
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type"},
	})
	return c
}
