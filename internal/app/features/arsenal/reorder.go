package arsenal

import (
	"net/http"

	"go.uber.org/zap"
)

// The drag script on the list page posts drops here and reloads on
// 204. Stale ids are no-ops server-side, so a drop racing an edit in
// another tab degrades to "nothing happened".

// HandleReorderResource handles POST /arsenal/reorder/resource with
// form fields drag and target, both resource ids.
func (h *Handler) HandleReorderResource(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	drag := r.PostFormValue("drag")
	target := r.PostFormValue("target")
	if drag == "" || target == "" {
		http.Error(w, "drag and target required", http.StatusBadRequest)
		return
	}

	h.Catalog.MoveResourceOntoResource(drag, target)
	h.Log.Debug("resource reordered",
		zap.String("drag", drag),
		zap.String("target", target))
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderModuleDrop handles POST /arsenal/reorder/module-drop
// with form fields drag (a resource id) and module (the header it was
// dropped on).
func (h *Handler) HandleReorderModuleDrop(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	drag := r.PostFormValue("drag")
	module := r.PostFormValue("module")
	if drag == "" || module == "" {
		http.Error(w, "drag and module required", http.StatusBadRequest)
		return
	}

	h.Catalog.MoveResourceOntoModule(drag, module)
	h.Log.Debug("resource dropped on module",
		zap.String("drag", drag),
		zap.String("module", module))
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorderModules handles POST /arsenal/reorder/modules with form
// fields drag and target, both module names.
func (h *Handler) HandleReorderModules(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	drag := r.PostFormValue("drag")
	target := r.PostFormValue("target")
	if drag == "" || target == "" {
		http.Error(w, "drag and target required", http.StatusBadRequest)
		return
	}

	h.Catalog.MoveModuleOntoModule(drag, target)
	h.Log.Debug("modules reordered",
		zap.String("drag", drag),
		zap.String("target", target))
	w.WriteHeader(http.StatusNoContent)
}
