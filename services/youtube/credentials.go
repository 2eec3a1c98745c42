package youtube

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// Credentials — токен-материал сессии в том же виде, в каком он кладется
// в cookie: должен собираться обратно из сериализованных полей.
// В базу никогда не пишется.
type Credentials struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenURI     string    `json:"token_uri"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Scopes       []string  `json:"scopes"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

func (c Credentials) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeCredentials(raw string) (Credentials, error) {
	var c Credentials
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// TokenSource строит источник токенов, который сам обновляет access token
// через token_uri, когда тот истекает (если есть refresh token).
func (c Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	cfg := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scopes:       c.Scopes,
		Endpoint:     oauth2.Endpoint{TokenURL: c.TokenURI},
	}
	return cfg.TokenSource(ctx, &oauth2.Token{
		AccessToken:  c.Token,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	})
}
