package youtube

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing — не заданы переменные окружения для Google OAuth.
	ErrConfigMissing = errors.New("google oauth configuration is incomplete")

	// ErrStateMismatch — анти-CSRF state отсутствует или не совпал на callback.
	ErrStateMismatch = errors.New("oauth state missing or mismatched")

	ErrInvalidPrivacy  = errors.New("privacy must be public, unlisted or private")
	ErrMissingCategory = errors.New("category id is required")
)

// AuthorizationError — обмен кода на токен не удался (сеть, протухший код,
// отозванное согласие).
type AuthorizationError struct {
	Err error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// ProfileError — не удалось получить профиль пользователя или в нем нет email.
type ProfileError struct {
	Err error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("profile fetch failed: %v", e.Err)
}

func (e *ProfileError) Unwrap() error { return e.Err }

type UploadErrorKind string

const (
	CredentialsExpired      UploadErrorKind = "credentials_expired"
	QuotaExceeded           UploadErrorKind = "quota_exceeded"
	TransientNetworkFailure UploadErrorKind = "transient_network_failure"
	RejectedByProvider      UploadErrorKind = "rejected_by_provider"
)

type UploadError struct {
	Kind UploadErrorKind
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed (%s): %v", e.Kind, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
