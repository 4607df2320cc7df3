package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/lehigh-university-libraries/geopicker/internal/picking"
)

// SessionCookie holds the opaque token the session store is keyed by
const SessionCookie = "geopicker_session"

type sessionKey struct{}

// withSession makes sure every request carries a session token, issuing a new one on first visit
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			token = cookie.Value
		} else {
			token = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionKey{}).(string)
	return token
}

// pageRequest combines the ?page= parameter with the page this session viewed last.
// A non-numeric page is treated as absent; one too large for an int saturates
// and is clamped like any other out-of-range page.
func (h *Handler) pageRequest(r *http.Request) picking.PageRequest {
	var req picking.PageRequest

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil || errors.Is(err, strconv.ErrRange) {
			req.Page = &page
		}
	}

	token := sessionToken(r.Context())
	if token == "" {
		return req
	}
	last, ok, err := h.sessions.LastPage(r.Context(), token)
	if err != nil {
		slog.Warn("Unable to read session", "err", err)
		return req
	}
	if ok {
		req.LastPage = &last
	}
	return req
}

func (h *Handler) rememberPage(r *http.Request, page int) {
	token := sessionToken(r.Context())
	if token == "" {
		return
	}
	if err := h.sessions.SetLastPage(r.Context(), token, page); err != nil {
		slog.Warn("Unable to save session", "err", err)
	}
}
