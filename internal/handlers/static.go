package handlers

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// HandleImage streams a file from the image root. Paths that would leave the root are rejected.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "*")

	// Prevent directory traversal attacks
	if !fs.ValidPath(name) || name == "." {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	info, err := fs.Stat(h.images, name)
	if err != nil || info.IsDir() {
		slog.Debug("Image not found", "path", name)
		http.NotFound(w, r)
		return
	}

	http.ServeFileFS(w, r, h.images, name)
}
