// Package http собирает REST-поверхность commentary на chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/commentary/internal/metrics"
	"github.com/pribylovaa/commentary/internal/transport/http/handlers"
	"github.com/pribylovaa/commentary/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой - роуты регистрируются на корне.
	Metrics  *metrics.Metrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// Пробы /livez и /healthz всегда на корне, вне BasePath.
func NewRouter(svc handlers.CommentService, health handlers.Pinger, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // ловим паники
		middleware.RequestID(),          // X-Request-Id до логирования
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(svc, health)

	root.Get("/livez", h.Livez)
	root.Get("/healthz", h.Healthz)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// thread
	r.Route("/sites/{site}/pages/{page}", func(r chi.Router) {
		r.Post("/comments", h.CreateComment)
		r.Get("/comments", h.ListThread)
		r.Get("/comments/flat", h.ListFlat)
		r.Get("/reactions", h.UserReactions)
	})

	// comments
	r.Get("/comments/{id}", h.GetCommentByID)
	r.Get("/comments/{id}/replies", h.ListReplies)
	r.Patch("/comments/{id}", h.EditComment)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Post("/comments/{id}/reactions", h.React)

	// admin
	r.Delete("/admin/comments/{id}", h.AdminDeleteComment)
	r.Put("/admin/comments/{id}/status", h.SetStatus)
	r.Post("/admin/sites/{site}/pages/{page}/reorder", h.ReorderAll)
}
