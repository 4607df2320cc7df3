package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
)

// HandleExport writes the spreadsheet to the data directory and shows the category list again.
// The file is not sent to the browser.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	result, err := h.exporter.Run()
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	flash := fmt.Sprintf("Exported %d selections to %s", result.Rows, filepath.Base(result.Files[0]))
	h.renderIndex(w, r, flash)
}
