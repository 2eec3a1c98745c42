package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("fake video bytes"), 0o600))
	return path
}

// uploadServer имитирует upload-endpoint провайдера.
func uploadServer(status int, body string, hits *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func validRequest(path string) UploadRequest {
	return UploadRequest{
		FilePath:    path,
		Title:       "Mi titulo local",
		Description: "Descripcion local",
		CategoryID:  "28",
		Privacy:     "private",
	}
}

func TestUploadValidatesBeforeRemoteCall(t *testing.T) {
	var hits atomic.Int64
	server := uploadServer(http.StatusOK, `{"id":"nope"}`, &hits)
	defer server.Close()

	uploader := NewUploader(option.WithEndpoint(server.URL))
	path := writeTempVideo(t)

	req := validRequest(path)
	req.Privacy = "secreto"
	_, err := uploader.Upload(context.Background(), testCredentials(), req)
	assert.ErrorIs(t, err, ErrInvalidPrivacy)

	req = validRequest(path)
	req.CategoryID = ""
	_, err = uploader.Upload(context.Background(), testCredentials(), req)
	assert.ErrorIs(t, err, ErrMissingCategory)

	req = validRequest(filepath.Join(t.TempDir(), "no-such-file.mp4"))
	_, err = uploader.Upload(context.Background(), testCredentials(), req)
	assert.Error(t, err)

	assert.EqualValues(t, 0, hits.Load(), "локальные ошибки не доходят до провайдера")
}

func TestUploadSuccess(t *testing.T) {
	body := `{
		"id": "xyz123",
		"snippet": {
			"title": "My Video",
			"channelTitle": "Canal de Ana",
			"publishedAt": "2026-08-30T10:00:00Z",
			"thumbnails": {
				"default": {"url": "https://img.example/default.jpg"},
				"high": {"url": "https://img.example/high.jpg"}
			}
		}
	}`
	server := uploadServer(http.StatusOK, body, nil)
	defer server.Close()

	uploader := NewUploader(option.WithEndpoint(server.URL))
	path := writeTempVideo(t)

	desc, err := uploader.Upload(context.Background(), testCredentials(), validRequest(path))
	require.NoError(t, err)

	assert.Equal(t, "xyz123", desc.ID)
	assert.Equal(t, "My Video", desc.Title)
	assert.Equal(t, "Descripcion local", desc.Description, "описание берется из запроса, если провайдер его не вернул")
	assert.Equal(t, "Canal de Ana", desc.ChannelTitle)
	assert.Equal(t, "https://img.example/high.jpg", desc.ThumbnailURL, "high предпочтительнее default")
	assert.Contains(t, desc.WatchURL, "xyz123")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "сервис не трогает файл вызывающего")
}

func TestUploadDescriptorFallbacks(t *testing.T) {
	server := uploadServer(http.StatusOK, `{"id":"abc777"}`, nil)
	defer server.Close()

	uploader := NewUploader(option.WithEndpoint(server.URL))
	desc, err := uploader.Upload(context.Background(), testCredentials(), validRequest(writeTempVideo(t)))
	require.NoError(t, err)

	assert.Equal(t, "Mi titulo local", desc.Title)
	assert.Equal(t, "Descripcion local", desc.Description)
	assert.Empty(t, desc.ThumbnailURL, "отсутствие превью — не ошибка")
	assert.Equal(t, "https://www.youtube.com/watch?v=abc777", desc.WatchURL)
}

func TestUploadRejectsResponseWithoutID(t *testing.T) {
	server := uploadServer(http.StatusOK, `{"snippet":{"title":"sin id"}}`, nil)
	defer server.Close()

	uploader := NewUploader(option.WithEndpoint(server.URL))
	_, err := uploader.Upload(context.Background(), testCredentials(), validRequest(writeTempVideo(t)))

	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, RejectedByProvider, uerr.Kind)
}

func TestUploadErrorTaxonomy(t *testing.T) {
	googleErr := func(code int, reason string) string {
		return fmt.Sprintf(`{"error":{"code":%d,"message":"nope","errors":[{"reason":"%s","domain":"youtube.quota"}]}}`, code, reason)
	}

	cases := []struct {
		name   string
		status int
		body   string
		kind   UploadErrorKind
	}{
		{"expired credentials", http.StatusUnauthorized, googleErr(401, "authError"), CredentialsExpired},
		{"quota exceeded", http.StatusForbidden, googleErr(403, "quotaExceeded"), QuotaExceeded},
		{"upload limit", http.StatusForbidden, googleErr(403, "uploadLimitExceeded"), QuotaExceeded},
		{"forbidden otherwise", http.StatusForbidden, googleErr(403, "forbidden"), RejectedByProvider},
		{"bad metadata", http.StatusBadRequest, googleErr(400, "invalidTitle"), RejectedByProvider},
		{"provider down", http.StatusInternalServerError, googleErr(500, "backendError"), TransientNetworkFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := uploadServer(tc.status, tc.body, nil)
			defer server.Close()

			uploader := NewUploader(option.WithEndpoint(server.URL))
			_, err := uploader.Upload(context.Background(), testCredentials(), validRequest(writeTempVideo(t)))

			var uerr *UploadError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.kind, uerr.Kind)
		})
	}
}

func TestUploadTransportFailure(t *testing.T) {
	server := uploadServer(http.StatusOK, `{}`, nil)
	server.Close() // соединение заведомо не установится

	uploader := NewUploader(option.WithEndpoint(server.URL))
	_, err := uploader.Upload(context.Background(), testCredentials(), validRequest(writeTempVideo(t)))

	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, TransientNetworkFailure, uerr.Kind)
}
