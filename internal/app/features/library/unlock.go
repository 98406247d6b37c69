package library

import (
	"context"
	"net/http"

	"github.com/dmagnetico/arsenal/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleUnlock handles POST /library/{id}/unlock. A matching key (or
// the master override) records the unlock and lands back on the
// library with the card open; a rejection redirects back with the card
// flagged so the member can retry immediately.
func (h *Handler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, ok := h.Catalog.Get(id)
	if !ok {
		http.Redirect(w, r, "/library", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "unlock: bad form", "Pedido invalido.", "/library")
		return
	}
	code := r.PostFormValue("key")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	granted, err := h.Vault.Attempt(ctx, res, code)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unlock: record failed", err,
			"Nao foi possivel registrar o desbloqueio.", "/library")
		return
	}
	if !granted {
		h.Log.Info("unlock rejected", zap.String("resource", id))
		http.Redirect(w, r, "/library?denied="+id, http.StatusSeeOther)
		return
	}

	h.Log.Info("unlock granted", zap.String("resource", id))
	http.Redirect(w, r, "/library", http.StatusSeeOther)
}
