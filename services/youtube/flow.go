package youtube

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

// Flow ведет авторизацию по authorization code: строит URL согласия,
// выдает анти-CSRF state и меняет код на токены.
type Flow struct {
	cfg *oauth2.Config
}

func NewFlow(cfg *oauth2.Config) (*Flow, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" || len(cfg.Scopes) == 0 {
		return nil, ErrConfigMissing
	}
	return &Flow{cfg: cfg}, nil
}

// BeginAuthorization возвращает URL страницы согласия провайдера и свежий
// state. State обязан попасть в сессию и быть одноразовым.
func (f *Flow) BeginAuthorization() (authURL, state string, err error) {
	state, err = newState()
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	// AccessTypeOffline — иначе Google не выдаст refresh token
	authURL = f.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	return authURL, state, nil
}

// CompleteAuthorization проверяет state и меняет authorization code на
// Credentials. Пустой или несовпавший expectedState — SecurityError,
// до обращения к провайдеру дело не доходит.
func (f *Flow) CompleteAuthorization(ctx context.Context, receivedState, expectedState, code string) (Credentials, error) {
	if expectedState == "" || receivedState != expectedState {
		return Credentials{}, ErrStateMismatch
	}

	token, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return Credentials{}, &AuthorizationError{Err: err}
	}

	return Credentials{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     f.cfg.Endpoint.TokenURL,
		ClientID:     f.cfg.ClientID,
		ClientSecret: f.cfg.ClientSecret,
		Scopes:       f.cfg.Scopes,
		Expiry:       token.Expiry,
	}, nil
}

func newState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
