package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/commentary/internal/metrics"
)

// Metrics учитывает запросы в прометеевских метриках по шаблону маршрута chi.
// Шаблон известен только после маршрутизации, поэтому читается после next.
// m == nil - мидлвар no-op.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			m.HTTPRequest(route, r.Method, sw.code(), time.Since(start))
		})
	}
}
