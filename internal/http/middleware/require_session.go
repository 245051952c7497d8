package middleware

import (
	"net/http"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	apierrors "github.com/thecontemporary/news-portal/internal/errors"
)

// sessionChecker сообщает, есть ли сейчас аутентифицированная сессия.
type sessionChecker interface {
	Authenticated() bool
}

// RequireSession закрывает маршрут для неаутентифицированных запросов.
// Проверяется только наличие токенов: их валидность подтверждает backoffice
// при первом же проксируемом запросе (просроченный access-токен пройдёт
// через refresh, мёртвая сессия вернёт 401 оттуда).
func RequireSession(sessions sessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Authenticated() {
				apierrors.WriteError(w, r, &backoffice.StatusError{
					StatusCode: http.StatusUnauthorized,
					Status:     http.StatusText(http.StatusUnauthorized),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
