package videos

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"videotube-backend/config"
	"videotube-backend/controllers/authentication"
	"videotube-backend/models/videos"
)

// Home — сводка каталога: все видео, новые сверху, плюс суммарные метрики.
func Home(w http.ResponseWriter, r *http.Request) {
	list, totals, err := videos.ListAll(config.DB)
	if err != nil {
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"videos":       list,
		"total_videos": totals.Videos,
		"total_views":  totals.Views,
		"total_likes":  totals.Likes,
		"notices":      authentication.TakeFlashes(w, r),
	})
}

// MyVideos — видео текущего пользователя: поиск по подстроке заголовка
// (?buscar=), фильтр по категории (?categoria=), страницы по 10 (?page=).
// Агрегаты считаются по отфильтрованной выборке, не по странице.
func MyVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.CurrentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login/", http.StatusTemporaryRedirect)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	list, totals, err := videos.List(config.DB, videos.ListFilter{
		UserID:   userID,
		Query:    r.URL.Query().Get("buscar"),
		Category: r.URL.Query().Get("categoria"),
		Page:     page,
	})
	if err != nil {
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"videos":             list,
		"total_videos_count": totals.Videos,
		"total_views":        totals.Views,
		"total_likes":        totals.Likes,
		"total_comments":     totals.Comments,
		"page_size":          videos.PageSize,
		"notices":            authentication.TakeFlashes(w, r),
	})
}

// Detail — карточка одного видео по /video/{id}/.
func Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid video ID", http.StatusBadRequest)
		return
	}

	video, err := videos.GetByID(config.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Video not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load video", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(video)
}
