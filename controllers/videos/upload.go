package videos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"videotube-backend/config"
	"videotube-backend/controllers/authentication"
	"videotube-backend/models/videos"
	"videotube-backend/services/youtube"
)

const maxUploadMemory = 32 << 20

// Category — провайдерский код рубрики и подпись для формы.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Categories = []Category{
	{"22", "People & Blogs"},
	{"27", "Education"},
	{"28", "Programación"},
	{"10", "Music"},
	{"17", "Sports"},
	{"20", "Gaming"},
}

// Швы для тестов: бэкенд загрузки и запись в каталог.
type uploadBackend interface {
	Upload(ctx context.Context, creds youtube.Credentials, req youtube.UploadRequest) (*youtube.Descriptor, error)
}

var (
	uploader  uploadBackend = youtube.NewUploader()
	saveVideo               = func(video *videos.Video) error {
		return config.DB.Create(video).Error
	}
)

// Upload обслуживает /subir/: GET отдает справочник категорий для формы,
// POST выполняет загрузку. Требует логин и выданные OAuth-credentials;
// без credentials отправляем на авторизацию.
func Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := authentication.CurrentUserID(r); !ok {
		http.Redirect(w, r, "/login/", http.StatusTemporaryRedirect)
		return
	}

	creds, ok := authentication.SessionCredentials(r)
	if !ok {
		authentication.Flash(w, r, "Primero necesitamos permiso para subir videos a tu canal.")
		http.Redirect(w, r, "/oauth/authorize/", http.StatusTemporaryRedirect)
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"categorias": Categories,
			"notices":    authentication.TakeFlashes(w, r),
		})
		return
	}

	handleUploadPost(w, r, creds)
}

func handleUploadPost(w http.ResponseWriter, r *http.Request, creds youtube.Credentials) {
	userID, _ := authentication.CurrentUserID(r)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		authentication.Flash(w, r, "Por favor selecciona un archivo de video.")
		http.Redirect(w, r, "/subir/", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		// без файла к провайдеру не ходим
		authentication.Flash(w, r, "Por favor selecciona un archivo de video.")
		http.Redirect(w, r, "/subir/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	tempPath, err := saveTempFile(file, header.Filename)
	if err != nil {
		log.Printf("save temp file: %v", err)
		authentication.Flash(w, r, "Error al subir video.")
		http.Redirect(w, r, "/subir/", http.StatusSeeOther)
		return
	}
	// временный файл принадлежит этому запросу и удаляется на любом исходе
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("remove temp file %s: %v", tempPath, err)
		}
	}()

	ctx, cancel := context.WithTimeout(r.Context(), youtube.UploadTimeout)
	defer cancel()

	title := r.FormValue("titulo")
	category := r.FormValue("categoria")
	descriptor, err := uploader.Upload(ctx, creds, youtube.UploadRequest{
		FilePath:    tempPath,
		Title:       title,
		Description: r.FormValue("descripcion"),
		CategoryID:  category,
		Privacy:     r.FormValue("privacidad"),
	})
	if err != nil {
		redirectUploadError(w, r, err)
		return
	}

	record := &videos.Video{
		YouTubeID:    descriptor.ID,
		Title:        descriptor.Title,
		Description:  descriptor.Description,
		VideoURL:     descriptor.WatchURL,
		ThumbnailURL: descriptor.ThumbnailURL,
		ChannelTitle: descriptor.ChannelTitle,
		PublishedAt:  descriptor.PublishedAt,
		Category:     category,
		UploadedBy:   userID,
	}
	if err := saveVideo(record); err != nil {
		log.Printf("save video record: %v", err)
		authentication.Flash(w, r, "El video se subió pero no pudimos guardarlo en el catálogo.")
		http.Redirect(w, r, "/mis-videos/", http.StatusSeeOther)
		return
	}

	authentication.Flash(w, r, fmt.Sprintf("¡Video '%s' subido correctamente!", record.Title))
	http.Redirect(w, r, "/mis-videos/", http.StatusSeeOther)
}

func redirectUploadError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("upload failed: %v", err)

	var uerr *youtube.UploadError
	if errors.As(err, &uerr) && uerr.Kind == youtube.CredentialsExpired {
		// токены протухли: единственный выход — заново спросить согласие
		authentication.Flash(w, r, "Tu autorización expiró, vuelve a conectar con YouTube.")
		http.Redirect(w, r, "/oauth/authorize/", http.StatusSeeOther)
		return
	}

	switch {
	case errors.Is(err, youtube.ErrInvalidPrivacy), errors.Is(err, youtube.ErrMissingCategory):
		authentication.Flash(w, r, "Revisa la categoría y la privacidad del video.")
	default:
		authentication.Flash(w, r, "Error al subir video.")
	}
	http.Redirect(w, r, "/subir/", http.StatusSeeOther)
}

// saveTempFile пишет загруженный файл во временный путь. Имя строится из
// UUID, от оригинального имени остается только расширение — исходное имя
// пользователя в пути не участвует.
func saveTempFile(src io.Reader, originalName string) (string, error) {
	ext := filepath.Ext(filepath.Base(originalName))
	if strings.ContainsAny(ext, "/\\") {
		ext = ""
	}

	path := filepath.Join(os.TempDir(), "videotube_"+uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
