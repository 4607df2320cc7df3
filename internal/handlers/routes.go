package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes wires every endpoint of the picker UI
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(h.withSession)

	r.Get("/", h.HandleIndex)
	r.Get("/category/{category}", h.HandleCategory)
	r.Post("/select", h.HandleSelect)
	r.Post("/unselect", h.HandleUnselect)
	r.Get("/export-excel", h.HandleExport)
	r.Get("/img/*", h.HandleImage)
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	return r
}

// RequestLogger logs method, path, status and latency of every request
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		slog.Info("",
			"latency", time.Since(start).String(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
		)
	})
}
