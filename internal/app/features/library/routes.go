package library

import (
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member library under /library.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeLibrary)
		pr.Post("/{id}/unlock", h.HandleUnlock)
		pr.Post("/{id}/open", h.HandleOpen)
		pr.Post("/{id}/open/{deliverableID}", h.HandleOpen)
	})
	return r
}

// BlobRoutes mounts the staged payload endpoint under /blob. Tokens
// are unguessable and short-lived, so the route itself needs no role
// gate beyond a signed-in session.
func BlobRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{token}", h.ServeBlob)
	})
	return r
}
