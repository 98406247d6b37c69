package arsenal

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmagnetico/arsenal/internal/app/system/auth"
	"github.com/dmagnetico/arsenal/internal/domain/models"
)

type cardVM struct {
	ID         string
	Title      string
	Type       models.ResourceType
	CoverImage string
	LockDays   int
	ManualLock bool
}

type moduleVM struct {
	Name  string
	Count int
	Cards []cardVM
}

type listData struct {
	Title      string
	UserName   string
	Modules    []moduleVM
	AllModules []string
}

// ServeList handles GET /arsenal: every module in display order with
// its resources, including empty modules, so each stays a drop target.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	byModule := make(map[string][]cardVM)
	for _, res := range h.Catalog.Resources() {
		m := res.EffectiveModule()
		byModule[m] = append(byModule[m], cardVM{
			ID:         res.ID,
			Title:      res.Title,
			Type:       res.Type,
			CoverImage: res.CoverImage,
			LockDays:   res.LockDays,
			ManualLock: res.IsManualLock,
		})
	}

	names := h.Catalog.Modules()
	var mods []moduleVM
	for _, name := range names {
		cards := byModule[name]
		mods = append(mods, moduleVM{Name: name, Count: len(cards), Cards: cards})
	}

	templates.Render(w, r, "arsenal_list", listData{
		Title:      "Arsenal",
		UserName:   u.Name,
		Modules:    mods,
		AllModules: names,
	})
}
