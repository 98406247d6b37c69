package library

import (
	"context"
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/app/system/deliverable"
	"github.com/dmagnetico/arsenal/internal/app/system/timelock"
	"github.com/dmagnetico/arsenal/internal/app/system/timeouts"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.uber.org/zap"
)

type deliverableVM struct {
	ID    string
	Title string
	Type  models.ResourceType
}

type cardVM struct {
	ID                 string
	Title              string
	Description        template.HTML
	CoverImage         string
	Type               models.ResourceType
	Locked             bool
	ManualLock         bool
	Remaining          string
	CheckoutURL        string
	PreviewCTA         template.HTML
	PreviewButtonLabel string
	DeniedKey          bool
	Deliverables       []deliverableVM
}

type moduleVM struct {
	Name  string
	Cards []cardVM
}

type libraryData struct {
	Title         string
	UserName      string
	MagneticPower int
	IsAdmin       bool
	Modules       []moduleVM
}

// ServeLibrary handles GET /library: every module in display order
// with its resources and their lock state for the current member.
func (h *Handler) ServeLibrary(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	denied := r.URL.Query().Get("denied")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	resources := h.Catalog.Resources()
	byModule := make(map[string][]cardVM)
	for _, res := range resources {
		m := res.EffectiveModule()
		byModule[m] = append(byModule[m], h.cardFor(ctx, res, u, denied))
	}

	var mods []moduleVM
	for _, name := range h.Catalog.Modules() {
		mods = append(mods, moduleVM{Name: name, Cards: byModule[name]})
	}

	templates.Render(w, r, "library", libraryData{
		Title:         "Biblioteca",
		UserName:      u.Name,
		MagneticPower: u.MagneticPower,
		IsAdmin:       u.IsAdmin(),
		Modules:       mods,
	})
}

// cardFor resolves one resource's presentation for the current user.
// Admin sees everything unlocked. A manual lock holds until a
// matching key was accepted; otherwise the timed lock counts from the
// member's join date.
func (h *Handler) cardFor(ctx context.Context, res models.Resource, u models.User, denied string) cardVM {
	card := cardVM{
		ID:                 res.ID,
		Title:              res.Title,
		Description:        template.HTML(h.sanitize.Sanitize(res.Description)),
		CoverImage:         res.CoverImage,
		Type:               res.Type,
		CheckoutURL:        res.CheckoutURL,
		PreviewCTA:         template.HTML(h.sanitize.Sanitize(res.PreviewCTA)),
		PreviewButtonLabel: res.PreviewButtonLabel,
		DeniedKey:          denied == res.ID,
	}

	if !u.IsAdmin() {
		if res.IsManualLock {
			unlocked, err := h.Vault.IsUnlocked(ctx, res.ID)
			if err != nil {
				h.Log.Error("unlock lookup failed", zap.String("resource", res.ID), zap.Error(err))
			}
			card.Locked = !unlocked
			card.ManualLock = card.Locked
		} else {
			st := timelock.Evaluate(u.JoinedAt, res.LockDays, u.Role)
			card.Locked = st.Locked
			card.Remaining = st.Remaining
		}
	}

	if !card.Locked {
		for _, d := range deliverable.Resolve(res) {
			card.Deliverables = append(card.Deliverables, deliverableVM{
				ID:    d.ID,
				Title: d.Title,
				Type:  d.Type,
			})
		}
	}
	return card
}

// accessible reports whether the current user may open the resource.
// Mirrors cardFor's lock resolution.
func (h *Handler) accessible(ctx context.Context, res models.Resource, u models.User) bool {
	if u.IsAdmin() {
		return true
	}
	if res.IsManualLock {
		unlocked, err := h.Vault.IsUnlocked(ctx, res.ID)
		if err != nil {
			h.Log.Error("unlock lookup failed", zap.String("resource", res.ID), zap.Error(err))
			return false
		}
		return unlocked
	}
	return !timelock.Evaluate(u.JoinedAt, res.LockDays, u.Role).Locked
}
