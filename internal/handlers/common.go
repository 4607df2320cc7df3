package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lehigh-university-libraries/geopicker/internal/export"
	"github.com/lehigh-university-libraries/geopicker/internal/models"
	"github.com/lehigh-university-libraries/geopicker/internal/picking"
	"github.com/lehigh-university-libraries/geopicker/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"add":         func(a, b int) int { return a + b },
	"sub":         func(a, b int) int { return a - b },
	"categoryURL": categoryURL,
	"imageURL":    imageURL,
}

type Handler struct {
	picker   *picking.Service
	exporter *export.Job
	sessions storage.SessionStore
	images   fs.FS
	tmpl     *template.Template
}

func New(picker *picking.Service, exporter *export.Job, sessions storage.SessionStore, imgDir string) *Handler {
	return &Handler{
		picker:   picker,
		exporter: exporter,
		sessions: sessions,
		images:   os.DirFS(imgDir),
		tmpl:     template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Response helpers
func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Unable to render template", "name", name, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Unable to write response", "name", name, "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// writeFailure reports storage, filesystem and parse errors as server errors
func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	kind := "unexpected error"
	var kindErr *models.Error
	if errors.As(err, &kindErr) {
		kind = kindErr.Kind.Error()
	}
	slog.Error("Request failed", "kind", kind, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func categoryURL(category string) string {
	return "/category/" + url.PathEscape(category)
}

func imageURL(imagePath string) string {
	segments := strings.Split(imagePath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/img/" + strings.Join(segments, "/")
}

// pathParam returns a decoded URL parameter. chi routes on RawPath when the
// request carries one, leaving the parameter escaped; otherwise the path is
// already decoded and must not be unescaped again.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
