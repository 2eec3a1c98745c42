package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// UploadTimeout ограничивает один вызов загрузки. Контекст при этом
// наследуется от входящего запроса, так что обрыв клиента отменяет и
// загрузку на провайдера.
const UploadTimeout = 15 * time.Minute

var validPrivacy = map[string]bool{
	"public":   true,
	"unlisted": true,
	"private":  true,
}

type UploadRequest struct {
	FilePath    string
	Title       string
	Description string
	CategoryID  string
	Privacy     string
}

// Descriptor — ответ провайдера о созданном видео. Опциональные поля
// snippet подменяются локальными значениями, отсутствие превью — не ошибка.
type Descriptor struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	PublishedAt  string
	ThumbnailURL string
	WatchURL     string
}

// Uploader заливает файл на канал пользователя. Файл по FilePath не
// трогает — временными файлами во всех исходах владеет вызывающий.
type Uploader struct {
	opts []option.ClientOption
}

func NewUploader(opts ...option.ClientOption) *Uploader {
	return &Uploader{opts: opts}
}

func (u *Uploader) Upload(ctx context.Context, creds Credentials, req UploadRequest) (*Descriptor, error) {
	if !validPrivacy[req.Privacy] {
		return nil, ErrInvalidPrivacy
	}
	if req.CategoryID == "" {
		return nil, ErrMissingCategory
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	clientOpts := append([]option.ClientOption{option.WithTokenSource(creds.TokenSource(ctx))}, u.opts...)
	svc, err := youtubeapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, &UploadError{Kind: TransientNetworkFailure, Err: fmt.Errorf("create youtube service: %w", err)}
	}

	video := &youtubeapi.Video{
		Snippet: &youtubeapi.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			CategoryId:  req.CategoryID,
		},
		Status: &youtubeapi.VideoStatus{PrivacyStatus: req.Privacy},
	}

	resp, err := svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyUploadError(err)
	}
	if resp.Id == "" {
		return nil, &UploadError{Kind: RejectedByProvider, Err: errors.New("provider returned no video id")}
	}

	return descriptorFromResponse(resp, req), nil
}

// descriptorFromResponse собирает дескриптор с фолбэками: пустые поля
// snippet замещаются метаданными запроса.
func descriptorFromResponse(resp *youtubeapi.Video, req UploadRequest) *Descriptor {
	d := &Descriptor{
		ID:          resp.Id,
		Title:       req.Title,
		Description: req.Description,
		WatchURL:    "https://www.youtube.com/watch?v=" + resp.Id,
	}

	if sn := resp.Snippet; sn != nil {
		if sn.Title != "" {
			d.Title = sn.Title
		}
		if sn.Description != "" {
			d.Description = sn.Description
		}
		d.ChannelTitle = sn.ChannelTitle
		d.PublishedAt = sn.PublishedAt
		if th := sn.Thumbnails; th != nil {
			// предпочитаем high, иначе default
			if th.High != nil && th.High.Url != "" {
				d.ThumbnailURL = th.High.Url
			} else if th.Default != nil {
				d.ThumbnailURL = th.Default.Url
			}
		}
	}
	return d
}

func classifyUploadError(err error) *UploadError {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == 401:
			return &UploadError{Kind: CredentialsExpired, Err: err}
		case gerr.Code == 403 && hasReason(gerr, "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded", "uploadLimitExceeded"):
			return &UploadError{Kind: QuotaExceeded, Err: err}
		case gerr.Code >= 500:
			return &UploadError{Kind: TransientNetworkFailure, Err: err}
		default:
			return &UploadError{Kind: RejectedByProvider, Err: err}
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		// token_uri отказал в refresh — согласие отозвано или токен протух
		return &UploadError{Kind: CredentialsExpired, Err: err}
	}

	return &UploadError{Kind: TransientNetworkFailure, Err: err}
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, reason := range reasons {
			if item.Reason == reason {
				return true
			}
		}
	}
	return false
}
