package arsenal

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/app/catalog"
)

type exportData struct {
	Title   string
	Count   int
	Snippet string
}

// ServeExport handles GET /arsenal/export: the live catalog rendered
// as a seed literal ready to paste into the source tree. Publishing
// means committing that snippet and redeploying.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	resources := h.Catalog.Resources()
	templates.Render(w, r, "arsenal_export", exportData{
		Title:   "Publicar catalogo",
		Count:   len(resources),
		Snippet: catalog.ExportSource(resources),
	})
}
