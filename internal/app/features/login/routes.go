package login

import "github.com/go-chi/chi/v5"

// Routes returns the login subrouter, mounted under /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandlePost)
	return r
}
