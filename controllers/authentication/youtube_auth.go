package authentication

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"videotube-backend/config"
	"videotube-backend/models/users"
	"videotube-backend/services/youtube"
)

// HandleAuthorize — шаг 1: строим URL согласия, кладем state в сессию и
// отправляем пользователя к провайдеру.
func HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	flow, err := youtube.NewFlow(config.YouTubeOAuth())
	if err != nil {
		log.Printf("oauth config error: %v", err)
		Flash(w, r, "Error de configuración: faltan credenciales de Google.")
		http.Redirect(w, r, "/login/", http.StatusTemporaryRedirect)
		return
	}

	authURL, state, err := flow.BeginAuthorization()
	if err != nil {
		log.Printf("begin authorization: %v", err)
		Flash(w, r, "Error al conectar con Google.")
		http.Redirect(w, r, "/login/", http.StatusTemporaryRedirect)
		return
	}

	session := Session(r)
	session.Values[stateKey] = state
	if err := session.Save(r, w); err != nil {
		log.Printf("save session: %v", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// HandleCallback — шаг 2: state обязан совпасть, код меняется на токены,
// по профилю находим или создаем пользователя и логиним его в сессию.
// Любая ошибка внешнего вызова превращается во flash и редирект на главную.
func HandleCallback(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	expectedState, _ := session.Values[stateKey].(string)
	// state одноразовый: стираем до проверки, второй callback с тем же
	// значением не пройдет независимо от исхода первого
	delete(session.Values, stateKey)
	session.Save(r, w)

	flow, err := youtube.NewFlow(config.YouTubeOAuth())
	if err != nil {
		log.Printf("oauth config error: %v", err)
		Flash(w, r, "Error de configuración: faltan credenciales de Google.")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	creds, err := flow.CompleteAuthorization(r.Context(), r.FormValue("state"), expectedState, r.FormValue("code"))
	if err != nil {
		if errors.Is(err, youtube.ErrStateMismatch) {
			log.Printf("oauth callback rejected: %v", err)
			Flash(w, r, "Error de seguridad (state missing).")
		} else {
			log.Printf("token exchange: %v", err)
			Flash(w, r, "Error en autenticación con Google.")
		}
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	user, err := youtube.ResolveIdentity(r.Context(), creds, &users.GormStore{DB: config.DB})
	if err != nil {
		log.Printf("resolve identity: %v", err)
		Flash(w, r, "No pudimos obtener tu email de Google.")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	encoded, err := creds.Encode()
	if err != nil {
		log.Printf("encode credentials: %v", err)
		Flash(w, r, "Error en autenticación con Google.")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	session.Values[userIDKey] = user.ID
	session.Values[credentialsKey] = encoded
	session.AddFlash(fmt.Sprintf("¡Bienvenido, %s!", user.Name))
	if err := session.Save(r, w); err != nil {
		log.Printf("save session: %v", err)
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/mis-videos/", http.StatusTemporaryRedirect)
}

// HandleLogin показывает страницу входа с кнопкой Google.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := CurrentUserID(r); ok {
		http.Redirect(w, r, "/mis-videos/", http.StatusTemporaryRedirect)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body>
		<a href="/oauth/authorize/">Iniciar sesión con Google</a>
	</body></html>`)
}

// HandleLogout чистит сессию: уходит и логин, и OAuth-материал.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	delete(session.Values, userIDKey)
	delete(session.Values, credentialsKey)
	delete(session.Values, stateKey)
	session.AddFlash("Sesión cerrada.")
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}
