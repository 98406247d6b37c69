package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	u, signedIn := auth.CurrentUser(r)

	data := pageData{
		Title:      "Acesso negado",
		IsLoggedIn: signedIn,
		Role:       u.Role,
		UserName:   u.Name,
		Message:    "Voce nao tem permissao para ver esta pagina.",
		BackURL:    "/library",
	}

	templates.Render(w, r, "error_forbidden", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	u, signedIn := auth.CurrentUser(r)

	data := pageData{
		Title:      "Entrada restrita",
		IsLoggedIn: signedIn,
		Role:       u.Role,
		UserName:   u.Name,
		Message:    "Entre com sua conta para continuar.",
		BackURL:    "/login",
	}

	templates.Render(w, r, "error_forbidden", data)
}
