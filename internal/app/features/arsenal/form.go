package arsenal

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type formViewData struct {
	Title    string
	Error    string
	Editing  bool
	Resource models.Resource
	Modules  []string
}

// ServeNew handles GET /arsenal/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "arsenal_form", formViewData{
		Title:    "Novo recurso",
		Resource: models.Resource{Module: models.DefaultModule},
		Modules:  h.Catalog.Modules(),
	})
}

// HandleCreate handles POST /arsenal. Title and cover image are the
// publication gate; everything else may arrive later through edits.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res, formErr := h.parseResourceForm(r)
	if formErr != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "arsenal_form", formViewData{
			Title:    "Novo recurso",
			Error:    formErr,
			Resource: res,
			Modules:  h.Catalog.Modules(),
		})
		return
	}

	res.ID = uuid.NewString()
	res.CreatedAt = time.Now().UnixMilli()
	h.Catalog.Add(res)

	h.Log.Info("resource created",
		zap.String("id", res.ID),
		zap.String("title", res.Title))
	http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
}

// ServeEdit handles GET /arsenal/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, ok := h.Catalog.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	templates.Render(w, r, "arsenal_form", formViewData{
		Title:    "Editar recurso",
		Editing:  true,
		Resource: res,
		Modules:  h.Catalog.Modules(),
	})
}

// HandleEdit handles POST /arsenal/{id}/edit. The resource keeps its
// id, position, and creation instant.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, ok := h.Catalog.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	res, formErr := h.parseResourceForm(r)
	if formErr != "" {
		res.ID = id
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "arsenal_form", formViewData{
			Title:    "Editar recurso",
			Error:    formErr,
			Editing:  true,
			Resource: res,
			Modules:  h.Catalog.Modules(),
		})
		return
	}

	res.ID = existing.ID
	res.CreatedAt = existing.CreatedAt
	h.Catalog.Update(res)

	h.Log.Info("resource updated", zap.String("id", id))
	http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
}

// HandleDelete handles POST /arsenal/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.Catalog.Delete(id)
	h.Log.Info("resource deleted", zap.String("id", id))
	http.Redirect(w, r, "/arsenal", http.StatusSeeOther)
}

// parseResourceForm reads the shared create/edit form. It returns the
// parsed resource and a user-facing validation message, empty when the
// form is acceptable.
func (h *Handler) parseResourceForm(r *http.Request) (models.Resource, string) {
	if err := r.ParseForm(); err != nil {
		return models.Resource{}, "Pedido invalido."
	}

	res := models.Resource{
		Title:              strings.TrimSpace(r.PostFormValue("title")),
		Description:        r.PostFormValue("description"),
		Type:               models.ResourceType(r.PostFormValue("type")),
		CoverImage:         strings.TrimSpace(r.PostFormValue("cover_image")),
		Module:             strings.TrimSpace(r.PostFormValue("module")),
		IsManualLock:       r.PostFormValue("is_manual_lock") == "on",
		CheckoutURL:        strings.TrimSpace(r.PostFormValue("checkout_url")),
		UnlockKey:          strings.TrimSpace(r.PostFormValue("unlock_key")),
		PreviewCTA:         r.PostFormValue("preview_cta"),
		PreviewButtonLabel: strings.TrimSpace(r.PostFormValue("preview_button_label")),
		FileBase64:         strings.TrimSpace(r.PostFormValue("file_base64")),
		ExternalLink:       strings.TrimSpace(r.PostFormValue("external_link")),
	}

	if days := r.PostFormValue("lock_days"); days != "" {
		v, err := strconv.Atoi(days)
		if err != nil || v < 0 {
			return res, "Dias de bloqueio deve ser um numero."
		}
		res.LockDays = v
	}

	newModule := strings.TrimSpace(r.PostFormValue("new_module"))
	if newModule != "" {
		res.Module = newModule
	}

	res.Deliverables = parseDeliverables(r)

	if res.Title == "" || res.CoverImage == "" {
		return res, "Preencha pelo menos o titulo e a capa."
	}
	switch res.Type {
	case models.TypePDF, models.TypeAudio, models.TypeLink:
	default:
		return res, "Tipo de recurso invalido."
	}
	return res, ""
}

// parseDeliverables reads the parallel deliverable field arrays. Rows
// with an empty title are dropped; missing ids get fresh ones.
func parseDeliverables(r *http.Request) []models.Deliverable {
	titles := r.PostForm["deliverable_title"]
	ids := r.PostForm["deliverable_id"]
	types := r.PostForm["deliverable_type"]
	files := r.PostForm["deliverable_file"]
	links := r.PostForm["deliverable_link"]

	at := func(list []string, i int) string {
		if i < len(list) {
			return list[i]
		}
		return ""
	}

	var out []models.Deliverable
	for i := range titles {
		title := strings.TrimSpace(titles[i])
		if title == "" {
			continue
		}
		d := models.Deliverable{
			ID:           strings.TrimSpace(at(ids, i)),
			Title:        title,
			Type:         models.ResourceType(at(types, i)),
			FileBase64:   strings.TrimSpace(at(files, i)),
			ExternalLink: strings.TrimSpace(at(links, i)),
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.Type == "" {
			d.Type = models.TypeLink
		}
		out = append(out, d)
	}
	return out
}
