package logout

import "github.com/go-chi/chi/v5"

// Routes returns the logout subrouter, mounted under /logout.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogout)
	return r
}
