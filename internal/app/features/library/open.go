package library

import (
	"context"
	"net/http"

	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/app/system/deliverable"
	"github.com/dmagnetico/arsenal/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleOpen handles POST /library/{id}/open and
// POST /library/{id}/open/{deliverableID}. Without a deliverable id
// the resource's primary deliverable opens. File payloads redirect to
// a short-lived blob URL, links to their normalized target.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deliverableID := chi.URLParam(r, "deliverableID")
	if deliverableID == "" {
		deliverableID = deliverable.PrimaryID
	}

	res, ok := h.Catalog.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	u, _ := auth.CurrentUser(r)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.accessible(ctx, res, u) {
		h.Log.Warn("open blocked on locked resource",
			zap.String("resource", id),
			zap.String("user", u.ID))
		http.Redirect(w, r, "/library", http.StatusSeeOther)
		return
	}

	d, ok := deliverable.Find(res, deliverableID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	act, err := deliverable.Open(d, h.Blobs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "open: staging failed", err,
			"Nao foi possivel abrir o recurso.", "/library")
		return
	}

	switch act.Kind {
	case deliverable.ActionBlob, deliverable.ActionLink:
		http.Redirect(w, r, act.URL, http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/library", http.StatusSeeOther)
	}
}

// ServeBlob handles GET /blob/{token}, serving a staged payload until
// its release fires.
func (h *Handler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	data, mime, ok := h.Blobs.Fetch(token)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
