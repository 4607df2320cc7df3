package handlers

import (
	"net/http"
)

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	category := r.PostFormValue("category")
	imagePath := r.PostFormValue("image_path")
	if category == "" || imagePath == "" {
		h.writeError(w, "category and image_path are required", http.StatusBadRequest)
		return
	}

	if err := h.picker.Select(category, imagePath); err != nil {
		h.writeFailure(w, err)
		return
	}

	http.Redirect(w, r, categoryURL(category), http.StatusSeeOther)
}

func (h *Handler) HandleUnselect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, "Invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	category := r.PostFormValue("category")
	if category == "" {
		h.writeError(w, "category is required", http.StatusBadRequest)
		return
	}

	if err := h.picker.Unselect(category); err != nil {
		h.writeFailure(w, err)
		return
	}

	http.Redirect(w, r, categoryURL(category), http.StatusSeeOther)
}
