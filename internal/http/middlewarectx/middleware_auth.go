// Package middlewarectx содержит HTTP middleware для проверки bearer-токенов.
//
// JWTMiddleware проверяет наличие токена в заголовке Authorization,
// передаёт его сервису учётных записей и в случае успеха кладёт
// актуальную учётную запись в контекст запроса.
//
// В случае любой ошибки проверки возвращает HTTP 401 с сообщением "Not authorized".
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// AccountKey ключ учётной записи в контексте.
const AccountKey Key = "account"

// NotAuthorized сообщение для всех отказов в аутентификации.
const NotAuthorized = "Not authorized"

// Authenticator проверяет токен и возвращает учётную запись.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
func JWTMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenStr) == "" {
				log.Debug("missing or invalid authorization header")
				response.Render(w, r, response.Error(http.StatusUnauthorized, NotAuthorized))
				return
			}

			acc, err := auth.Authenticate(r.Context(), strings.TrimSpace(tokenStr))
			if err != nil {
				if errors.Is(err, models.ErrUnauthorized) {
					log.Debug("token rejected", sl.Err(err))
				} else {
					log.Error("failed to authenticate", sl.Err(err))
				}
				response.Render(w, r, response.Error(http.StatusUnauthorized, NotAuthorized))
				return
			}

			ctx := context.WithValue(r.Context(), AccountKey, acc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext возвращает учётную запись, положенную JWTMiddleware.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	acc, ok := ctx.Value(AccountKey).(*models.Account)
	return acc, ok && acc != nil
}

// WithAccount кладёт учётную запись в контекст. Используется в тестах обработчиков.
func WithAccount(ctx context.Context, acc *models.Account) context.Context {
	return context.WithValue(ctx, AccountKey, acc)
}
