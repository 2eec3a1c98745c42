package youtube

import (
	"context"
	"errors"
	"fmt"

	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"videotube-backend/models/users"
)

// DefaultGivenName подставляется, когда провайдер не вернул имя.
const DefaultGivenName = "Usuario"

// ResolveIdentity получает профиль по выданным credentials и находит или
// создает локального пользователя. Email — обязательный ключ связывания:
// без него авторизация бесполезна. Пароль не проверяется — доверяем
// OAuth-утверждению провайдера.
func ResolveIdentity(ctx context.Context, creds Credentials, store users.Store, opts ...option.ClientOption) (*users.User, error) {
	clientOpts := append([]option.ClientOption{option.WithTokenSource(creds.TokenSource(ctx))}, opts...)
	svc, err := goauth2.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, &ProfileError{Err: fmt.Errorf("create oauth2 service: %w", err)}
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, &ProfileError{Err: err}
	}
	if info.Email == "" {
		return nil, &ProfileError{Err: errors.New("provider returned no email")}
	}

	name := info.GivenName
	if name == "" {
		name = DefaultGivenName
	}

	user, err := store.FindByEmail(info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	user = &users.User{
		Email:    info.Email,
		Name:     name,
		Provider: "google",
	}
	if err := store.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
