package authentication

import (
	"net/http"

	"github.com/gorilla/sessions"

	"videotube-backend/config"
	"videotube-backend/services/youtube"
)

// Ключи сессии — те же, что исторически лежали в cookie приложения.
const (
	stateKey       = "oauth_state"
	credentialsKey = "credentials"
	userIDKey      = "user_id"
)

func Session(r *http.Request) *sessions.Session {
	// CookieStore возвращает свежую сессию вместе с ошибкой декодирования,
	// так что битую cookie просто перезаписываем
	session, _ := config.Store.Get(r, config.SessionName)
	return session
}

// CurrentUserID сообщает, залогинен ли пользователь.
func CurrentUserID(r *http.Request) (uint, bool) {
	id, ok := Session(r).Values[userIDKey].(uint)
	return id, ok
}

// SessionCredentials восстанавливает OAuth-материал из сессии.
func SessionCredentials(r *http.Request) (youtube.Credentials, bool) {
	raw, ok := Session(r).Values[credentialsKey].(string)
	if !ok {
		return youtube.Credentials{}, false
	}
	creds, err := youtube.DecodeCredentials(raw)
	if err != nil {
		return youtube.Credentials{}, false
	}
	return creds, true
}

// Flash добавляет одноразовое уведомление для пользователя.
func Flash(w http.ResponseWriter, r *http.Request, message string) {
	session := Session(r)
	session.AddFlash(message)
	session.Save(r, w)
}

// TakeFlashes забирает накопленные уведомления (и стирает их из сессии).
func TakeFlashes(w http.ResponseWriter, r *http.Request) []string {
	session := Session(r)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	session.Save(r, w)

	notices := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices
}
