package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/geopicker/internal/models"
)

type indexData struct {
	*models.CategoryPage
	Flash string
}

type categoryData struct {
	*models.CategoryDetail
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, "")
}

// renderIndex is shared with the export handler so an export lands back on the same page
func (h *Handler) renderIndex(w http.ResponseWriter, r *http.Request, flash string) {
	page, err := h.picker.ListCategories(h.pageRequest(r))
	if err != nil {
		h.writeFailure(w, err)
		return
	}
	h.rememberPage(r, page.Page)

	h.render(w, "index.html", indexData{
		CategoryPage: page,
		Flash:        flash,
	})
}

func (h *Handler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	category := pathParam(r, "category")

	detail, err := h.picker.CategoryDetail(category)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.render(w, "category.html", categoryData{CategoryDetail: detail})
}
