package arsenal

import (
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin curation surface under /arsenal.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
		pr.Post("/{id}/module", h.HandleChangeModule)

		pr.Post("/reorder/resource", h.HandleReorderResource)
		pr.Post("/reorder/module-drop", h.HandleReorderModuleDrop)
		pr.Post("/reorder/modules", h.HandleReorderModules)

		pr.Post("/modules/{name}/delete", h.HandleDeleteModule)

		pr.Get("/export", h.ServeExport)
	})
	return r
}
