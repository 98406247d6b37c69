// Package catalog owns the in-memory resource catalog and the module
// ordering it is displayed in.
//
// The in-memory state is authoritative for the whole session: every
// mutation updates it synchronously and then schedules a best-effort
// background persist. A persist failure is logged and the session
// keeps running on memory alone.
package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.uber.org/zap"
)

// ModulesKey is the small-value store key holding the JSON-encoded
// module name order.
const ModulesKey = "dm_modules"

// persistTimeout bounds each background save.
const persistTimeout = 30 * time.Second

// Store is the persistence port for the resource catalog. SaveAll has
// replace-everything semantics: the stored set is cleared and the
// given list written in order.
type Store interface {
	LoadAll(ctx context.Context) ([]models.Resource, error)
	SaveAll(ctx context.Context, resources []models.Resource) error
}

// KV is the slice of the small-value store used for the module order.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Catalog holds the ordered resource list and the module order, both
// guarded by one mutex so mutations serialize the way a single UI
// event queue would.
type Catalog struct {
	mu        sync.Mutex
	resources []models.Resource
	modules   []string

	store Store
	kv    KV
	log   *zap.Logger
}

// New creates an empty catalog bound to its persistence collaborators.
// Call Load before serving.
func New(store Store, kv KV, logger *zap.Logger) *Catalog {
	return &Catalog{store: store, kv: kv, log: logger}
}

// Load populates the catalog from the store, merged with the
// compiled-in seed list. Seed entries always survive and win id
// collisions against persisted rows, and stay in front of them. The
// module order is the persisted order unioned with every module
// observed on a resource; when nothing yields a module the default
// module stands alone.
//
// A store failure is not fatal: the catalog falls back to the seed and
// the default module.
func (c *Catalog) Load(ctx context.Context, seed []models.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.store.LoadAll(ctx)
	if err != nil {
		c.log.Error("catalog load failed, falling back to seed", zap.Error(err))
		c.resources = append([]models.Resource(nil), seed...)
		c.modules = observedModules(c.resources)
		return
	}

	seedIDs := make(map[string]struct{}, len(seed))
	for _, r := range seed {
		seedIDs[r.ID] = struct{}{}
	}

	merged := append([]models.Resource(nil), seed...)
	for _, r := range stored {
		if _, dup := seedIDs[r.ID]; !dup {
			merged = append(merged, r)
		}
	}
	c.resources = merged

	observed := observedModules(merged)
	saved := c.loadModuleOrder(ctx)
	c.modules = unionModules(saved, observed)
}

// Resources returns a copy of the ordered resource list.
func (c *Catalog) Resources() []models.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Resource(nil), c.resources...)
}

// Modules returns a copy of the module name order.
func (c *Catalog) Modules() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.modules...)
}

// Get returns the resource with the given id.
func (c *Catalog) Get(id string) (models.Resource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.resources {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

// Add prepends a new resource (most recent first). A module name not
// yet in the order is appended to it.
func (c *Catalog) Add(r models.Resource) {
	c.mu.Lock()
	c.resources = append([]models.Resource{r}, c.resources...)
	c.ensureModuleLocked(r.Module)
	c.mu.Unlock()
	c.schedulePersist()
}

// Update replaces the resource with a matching id in place, keeping
// its position. Unknown ids are ignored. Same new-module handling as
// Add.
func (c *Catalog) Update(r models.Resource) {
	c.mu.Lock()
	for i := range c.resources {
		if c.resources[i].ID == r.ID {
			c.resources[i] = r
			break
		}
	}
	c.ensureModuleLocked(r.Module)
	c.mu.Unlock()
	c.schedulePersist()
}

// Delete removes the resource with the given id. The module order is
// untouched; a module left empty remains as an explicit empty section.
func (c *Catalog) Delete(id string) {
	c.mu.Lock()
	kept := c.resources[:0]
	for _, r := range c.resources {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.resources = kept
	c.mu.Unlock()
	c.schedulePersist()
}

// Reorder wholesale-replaces the resource order. The caller supplies a
// valid permutation or subset; nothing is validated here.
func (c *Catalog) Reorder(resources []models.Resource) {
	c.mu.Lock()
	c.resources = append([]models.Resource(nil), resources...)
	c.mu.Unlock()
	c.schedulePersist()
}

// ReorderModules wholesale-replaces the module name order. Resource
// order is untouched; use MoveModuleOntoModule for the drag gesture
// that rebuilds both.
func (c *Catalog) ReorderModules(order []string) {
	c.mu.Lock()
	c.modules = append([]string(nil), order...)
	c.mu.Unlock()
	c.schedulePersist()
}

// DeleteModule removes the module from the order and every resource
// whose effective module matches, in one step. There is no re-homing
// of members to the default module.
func (c *Catalog) DeleteModule(name string) {
	c.mu.Lock()
	kept := c.resources[:0]
	for _, r := range c.resources {
		if r.EffectiveModule() != name {
			kept = append(kept, r)
		}
	}
	c.resources = kept

	mods := c.modules[:0]
	for _, m := range c.modules {
		if m != name {
			mods = append(mods, m)
		}
	}
	c.modules = mods
	c.mu.Unlock()
	c.schedulePersist()
}

// ModuleResourceCount returns how many resources currently live in the
// named module. Used by the curation surface to phrase the cascade
// confirmation.
func (c *Catalog) ModuleResourceCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.resources {
		if r.EffectiveModule() == name {
			n++
		}
	}
	return n
}

// ensureModuleLocked appends a not-yet-listed module name to the
// order. Blank means "default module" and is never listed through this
// path; the load-time union covers it.
func (c *Catalog) ensureModuleLocked(name string) {
	if name == "" {
		return
	}
	for _, m := range c.modules {
		if m == name {
			return
		}
	}
	c.modules = append(c.modules, name)
}

// schedulePersist fires one background save of the full state. The
// caller's mutation is already visible in memory; whichever of two
// overlapping saves finishes last wins, which is acceptable because
// memory, not the store, is authoritative within a session.
func (c *Catalog) schedulePersist() {
	c.mu.Lock()
	resources := append([]models.Resource(nil), c.resources...)
	modules := append([]string(nil), c.modules...)
	c.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := c.store.SaveAll(ctx, resources); err != nil {
			c.log.Error("catalog persist failed", zap.Error(err), zap.Int("resources", len(resources)))
		}
		raw, err := json.Marshal(modules)
		if err != nil {
			c.log.Error("module order encode failed", zap.Error(err))
			return
		}
		if err := c.kv.Set(ctx, ModulesKey, string(raw)); err != nil {
			c.log.Error("module order persist failed", zap.Error(err))
		}
	}()
}

func (c *Catalog) loadModuleOrder(ctx context.Context) []string {
	raw, ok, err := c.kv.Get(ctx, ModulesKey)
	if err != nil {
		c.log.Error("module order load failed", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		c.log.Error("module order decode failed", zap.Error(err))
		return nil
	}
	return names
}

// observedModules collects the effective module of each resource in
// list order, deduplicated. An empty catalog still yields the default
// module so the curation surface has somewhere to drop resources.
func observedModules(resources []models.Resource) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range resources {
		m := r.EffectiveModule()
		if _, dup := seen[m]; !dup {
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = []string{models.DefaultModule}
	}
	return out
}

// unionModules keeps the saved order and appends observed names the
// saved order is missing.
func unionModules(saved, observed []string) []string {
	if len(saved) == 0 {
		return observed
	}
	seen := make(map[string]struct{}, len(saved))
	out := append([]string(nil), saved...)
	for _, m := range saved {
		seen[m] = struct{}{}
	}
	for _, m := range observed {
		if _, dup := seen[m]; !dup {
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
