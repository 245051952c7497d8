package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/http/handlers"
	"github.com/thecontemporary/news-portal/internal/http/middleware"
	"github.com/thecontemporary/news-portal/internal/queries"
	"github.com/thecontemporary/news-portal/internal/session"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(q *queries.Queries, client *backoffice.Client, sessions *session.Store, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(q, client, sessions)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, client)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, client)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, client *backoffice.Client) {
	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.Register)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
	r.Put("/auth/profile", h.UpdateProfile)
	r.Put("/auth/change-password", h.ChangePassword)

	// публичный контент
	r.Get("/articles", h.ListArticles)
	r.Get("/articles/featured", h.FeaturedArticles)
	r.Get("/articles/breaking", h.BreakingArticles)
	r.Get("/articles/trending", h.TrendingArticles)
	r.Get("/articles/latest", h.LatestArticles)
	r.Get("/articles/related", h.RelatedArticles)
	r.Get("/articles/{identifier}", h.GetArticle)
	r.Get("/search", h.SearchArticles)

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/menu", h.MenuCategories)
	r.Get("/categories/{identifier}", h.GetCategory)

	r.Get("/ads", h.ActiveAds)
	r.Post("/ads/{id}/impression", h.TrackImpression)
	r.Post("/ads/{id}/click", h.TrackClick)

	// предпочтения
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences/language", h.SetLanguage)
	r.Put("/preferences/theme", h.SetTheme)

	// админка: только при живой сессии
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireSession(client))

		admin.Get("/dashboard", h.DashboardOverview)

		admin.Get("/articles", h.AdminListArticles)
		admin.Post("/articles", h.SaveArticle)
		admin.Put("/articles/{id}", h.SaveArticle)
		admin.Delete("/articles/{id}", h.DeleteArticle)

		admin.Get("/categories", h.AdminListCategories)
		admin.Post("/categories", h.SaveCategory)
		admin.Put("/categories/{id}", h.SaveCategory)
		admin.Delete("/categories/{id}", h.DeleteCategory)

		admin.Get("/ads", h.AdminListAds)
		admin.Post("/ads", h.SaveAd)
		admin.Put("/ads/{id}", h.SaveAd)
		admin.Delete("/ads/{id}", h.DeleteAd)

		admin.Get("/users", h.ListUsers)
		admin.Post("/users", h.SaveUser)
		admin.Put("/users/{id}", h.SaveUser)

		admin.Get("/media", h.ListMedia)
		admin.Post("/media", h.UploadMedia)
	})
}
