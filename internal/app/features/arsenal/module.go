package arsenal

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleChangeModule handles POST /arsenal/{id}/module: the per-card
// module select. The resource keeps its list position; a module name
// not yet in the order is appended to it.
func (h *Handler) HandleChangeModule(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	module := r.PostFormValue("module")
	if module == "" {
		http.Error(w, "missing module", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	res, ok := h.Catalog.Get(id)
	if !ok {
		// Stale card; the reload will reconcile.
		http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
		return
	}
	res.Module = module
	h.Catalog.Update(res)

	h.Log.Info("resource moved to module",
		zap.String("id", id),
		zap.String("module", module))
	http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
}

// HandleDeleteModule handles POST /arsenal/modules/{name}/delete.
// Deleting a module takes every resource inside it along; the list
// page asks for confirmation with the member count before posting.
func (h *Handler) HandleDeleteModule(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		http.Error(w, "bad module name", http.StatusBadRequest)
		return
	}

	count := h.Catalog.ModuleResourceCount(name)
	h.Catalog.DeleteModule(name)

	h.Log.Info("module deleted",
		zap.String("module", name),
		zap.Int("resources", count))
	http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
}
