package contextkeys

import (
	"context"

	"listing-service/internal/core/domain"
)

type accessTokenKeyType struct{}
type sessionKeyType struct{}

var (
	accessTokenKey = accessTokenKeyType{}
	sessionKey     = sessionKeyType{}
)

// ContextWithAccessToken кладет bearer-токен запроса в контекст.
// Адаптер платформы подставит его вместо сервисного ключа.
func ContextWithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

func AccessTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(accessTokenKey).(string); ok {
		return token
	}
	return ""
}

// ContextWithSession кладет проверенную сессию в контекст.
func ContextWithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext возвращает nil, если сессии нет.
func SessionFromContext(ctx context.Context) *domain.Session {
	if s, ok := ctx.Value(sessionKey).(*domain.Session); ok {
		return s
	}
	return nil
}
