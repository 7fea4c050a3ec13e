package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sessions-service/internal/http/handlers"
	"sessions-service/internal/http/middleware"
	"sessions-service/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(s *service.Service, opts Options) http.Handler {
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

	h := handlers.New(s)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// пользовательские сессии
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/resolve", h.ResolveSession)
	r.Post("/sessions/sweep", h.SweepSessions)

	// сессии гидов
	r.Post("/guide-sessions", h.CreateGuideSession)
	r.Get("/guide-sessions/resolve", h.ResolveGuideSession)
	r.Post("/guide-sessions/revoke", h.RevokeGuideSession)
	r.Post("/guide-sessions/revoke-all", h.RevokeAllGuideSessions)
	r.Post("/guide-sessions/refresh", h.RotateRefreshToken)
	r.Post("/guide-sessions/cleanup", h.CleanupGuideSessions)

	// подписи устройств
	r.Post("/users/{id}/signature", h.AssignSignature)
	r.Post("/users/signatures/backfill", h.BackfillSignatures)
}
