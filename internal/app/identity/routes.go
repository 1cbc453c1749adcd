// Package identity собирает HTTP-приложение сервиса учётных записей.
package identity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации.
	_ "github.com/magabrotheeeer/user-identity/docs"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/avatar"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/current"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/list"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/login"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/logout"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/resend"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/signup"
	"github.com/magabrotheeeer/user-identity/internal/http/handlers/users/verify"
	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/metrics"
	"github.com/magabrotheeeer/user-identity/internal/services/account"
)

// RouteOptions — параметры маршрутов, не относящиеся к сервису.
type RouteOptions struct {
	AvatarsDir    string
	MaxUploadSize int64
	Gatherer      prometheus.Gatherer
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, accounts *account.Service, opts RouteOptions) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/users", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/", list.New(logger, accounts).ServeHTTP)
		r.Post("/signup", signup.New(logger, accounts).ServeHTTP)
		r.Post("/login", login.New(logger, accounts).ServeHTTP)
		r.Get("/verify/{"+verify.TokenParam+"}", verify.New(logger, accounts).ServeHTTP)
		r.Post("/verify", resend.New(logger, accounts).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(accounts, logger))
			r.Get("/logout", logout.New(logger, accounts).ServeHTTP)
			r.Get("/current", current.New(accounts).ServeHTTP)
			r.Patch("/avatars", avatar.New(logger, accounts, opts.MaxUploadSize).ServeHTTP)
		})
	})

	r.Handle("/avatars/*", http.StripPrefix("/avatars/", http.FileServer(http.Dir(opts.AvatarsDir))))
	r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
