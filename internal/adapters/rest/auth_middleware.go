package rest

import (
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

// AuthMiddleware проверяет bearer-токен через платформу и кладет
// сессию и токен в контекст. Токен нужен дальше по цепочке: адаптер
// платформы подставляет его в свои запросы вместо сервисного ключа.
func AuthMiddleware(sessions port.SessionPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing")
				return
			}

			ctx := contextkeys.ContextWithAccessToken(r.Context(), token)

			session, err := sessions.CurrentSession(ctx)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx = contextkeys.ContextWithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
