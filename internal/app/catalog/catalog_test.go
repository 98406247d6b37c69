package catalog_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmagnetico/arsenal/internal/app/catalog"
	"github.com/dmagnetico/arsenal/internal/domain/models"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu      sync.Mutex
	stored  []models.Resource
	loadErr error
	saved   chan []models.Resource
}

func newFakeStore(stored ...models.Resource) *fakeStore {
	return &fakeStore{stored: stored, saved: make(chan []models.Resource, 16)}
}

func (f *fakeStore) LoadAll(ctx context.Context) ([]models.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.Resource(nil), f.stored...), nil
}

func (f *fakeStore) SaveAll(ctx context.Context, resources []models.Resource) error {
	f.saved <- append([]models.Resource(nil), resources...)
	return nil
}

type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
	sets   chan string
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string), sets: make(chan string, 16)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.values[key] = value
	f.mu.Unlock()
	f.sets <- value
	return nil
}

func res(id, module string) models.Resource {
	return models.Resource{ID: id, Title: "Resource " + id, Type: models.TypeLink, Module: module}
}

func ids(list []models.Resource) string {
	parts := make([]string, len(list))
	for i, r := range list {
		parts[i] = r.ID
	}
	return strings.Join(parts, ",")
}

func loaded(t *testing.T, store *fakeStore, kv *fakeKV, seed ...models.Resource) *catalog.Catalog {
	t.Helper()
	c := catalog.New(store, kv, zap.NewNop())
	c.Load(context.Background(), seed)
	return c
}

func waitSave(t *testing.T, store *fakeStore) []models.Resource {
	t.Helper()
	select {
	case got := <-store.saved:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background persist")
		return nil
	}
}

func TestLoad_SeedWinsAndStaysInFront(t *testing.T) {
	store := newFakeStore(res("p1", "Modulo 2"), res("s1", "Persisted Copy"))
	c := loaded(t, store, newFakeKV(), res("s1", "Modulo 1"), res("s2", "Modulo 1"))

	if got := ids(c.Resources()); got != "s1,s2,p1" {
		t.Errorf("merged order: got %q, want s1,s2,p1", got)
	}
	r, _ := c.Get("s1")
	if r.Module != "Modulo 1" {
		t.Error("seed entry must win the id collision against the persisted row")
	}
}

func TestLoad_StoreFailureFallsBackToSeed(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("boom")
	c := loaded(t, store, newFakeKV(), res("s1", ""))

	if got := ids(c.Resources()); got != "s1" {
		t.Errorf("got %q, want seed only", got)
	}
	mods := c.Modules()
	if len(mods) != 1 || mods[0] != models.DefaultModule {
		t.Errorf("modules: got %v, want just the default", mods)
	}
}

func TestLoad_EmptyEverythingYieldsDefaultModule(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV())

	mods := c.Modules()
	if len(mods) != 1 || mods[0] != models.DefaultModule {
		t.Errorf("modules: got %v, want [%s]", mods, models.DefaultModule)
	}
}

func TestLoad_ModuleOrderUnionsSavedAndObserved(t *testing.T) {
	kv := newFakeKV()
	kv.values[catalog.ModulesKey] = `["Modulo 2","Modulo 1"]`
	store := newFakeStore(res("p1", "Modulo 3"))
	c := loaded(t, store, kv, res("s1", "Modulo 1"))

	want := []string{"Modulo 2", "Modulo 1", "Modulo 3"}
	got := c.Modules()
	if len(got) != len(want) {
		t.Fatalf("modules: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("modules: got %v, want %v", got, want)
		}
	}
}

func TestLoad_CorruptModuleOrderIgnored(t *testing.T) {
	kv := newFakeKV()
	kv.values[catalog.ModulesKey] = "{not json"
	c := loaded(t, newFakeStore(), kv, res("s1", "Modulo 1"))

	mods := c.Modules()
	if len(mods) != 1 || mods[0] != "Modulo 1" {
		t.Errorf("modules: got %v, want observed order only", mods)
	}
}

func TestAdd_PrependsAndRegistersModule(t *testing.T) {
	store := newFakeStore()
	c := loaded(t, store, newFakeKV(), res("s1", "Modulo 1"))

	c.Add(res("n1", "Modulo Novo"))

	if got := ids(c.Resources()); got != "n1,s1" {
		t.Errorf("order: got %q, want n1,s1", got)
	}
	mods := c.Modules()
	if len(mods) != 2 || mods[1] != "Modulo Novo" {
		t.Errorf("modules: got %v, want new module appended", mods)
	}
	if got := waitSave(t, store); ids(got) != "n1,s1" {
		t.Errorf("persisted order: got %q", ids(got))
	}
}

func TestUpdate_InPlace(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(), res("s1", "Modulo 1"), res("s2", "Modulo 1"))

	edited := res("s2", "Modulo 1")
	edited.Title = "Edited"
	c.Update(edited)

	if got := ids(c.Resources()); got != "s1,s2" {
		t.Errorf("update must not move the resource, got %q", got)
	}
	r, _ := c.Get("s2")
	if r.Title != "Edited" {
		t.Error("update must replace the stored resource")
	}
}

func TestDelete_KeepsEmptyModuleSection(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(), res("s1", "Modulo 1"))

	c.Delete("s1")

	if len(c.Resources()) != 0 {
		t.Error("resource must be gone")
	}
	if mods := c.Modules(); len(mods) != 1 || mods[0] != "Modulo 1" {
		t.Errorf("module order must survive the last member's deletion, got %v", mods)
	}
}

func TestReorder_ReplacesWholesale(t *testing.T) {
	store := newFakeStore()
	c := loaded(t, store, newFakeKV(),
		res("s1", "Modulo 1"), res("s2", "Modulo 1"), res("s3", "Modulo 1"))

	c.Reorder([]models.Resource{res("s3", "Modulo 1"), res("s1", "Modulo 1"), res("s2", "Modulo 1")})

	if got := ids(c.Resources()); got != "s3,s1,s2" {
		t.Errorf("order: got %q, want s3,s1,s2", got)
	}
	if got := ids(waitSave(t, store)); got != "s3,s1,s2" {
		t.Errorf("persisted order: got %q, want s3,s1,s2", got)
	}
}

func TestReorderModules_ReplacesOrderOnly(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("b1", "Modulo 2"))

	c.ReorderModules([]string{"Modulo 2", "Modulo 1"})

	if mods := c.Modules(); mods[0] != "Modulo 2" || mods[1] != "Modulo 1" {
		t.Errorf("module order: got %v", mods)
	}
	if got := ids(c.Resources()); got != "a1,b1" {
		t.Errorf("resource order must be untouched, got %q", got)
	}
}

func TestDeleteModule_Cascades(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("b1", "Modulo 2"), res("a2", ""))

	c.DeleteModule("Modulo 1")

	if got := ids(c.Resources()); got != "b1" {
		t.Errorf("cascade must take default-module members too, got %q", got)
	}
	for _, m := range c.Modules() {
		if m == "Modulo 1" {
			t.Error("deleted module must leave the order")
		}
	}
}

func TestModuleResourceCount(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("a2", ""), res("b1", "Modulo 2"))

	if n := c.ModuleResourceCount("Modulo 1"); n != 2 {
		t.Errorf("count: got %d, want 2 (explicit plus default)", n)
	}
}

func TestMoveResourceOntoResource(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("a2", "Modulo 1"), res("b1", "Modulo 2"))

	c.MoveResourceOntoResource("a1", "b1")

	if got := ids(c.Resources()); got != "a2,a1,b1" {
		t.Errorf("order: got %q, want a2,a1,b1", got)
	}
	r, _ := c.Get("a1")
	if r.Module != "Modulo 2" {
		t.Error("dragged card must adopt the target's module")
	}
}

func TestMoveResourceOntoResource_NoOps(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(), res("a1", "Modulo 1"), res("a2", "Modulo 1"))

	c.MoveResourceOntoResource("a1", "a1")
	c.MoveResourceOntoResource("ghost", "a2")
	c.MoveResourceOntoResource("a1", "ghost")

	if got := ids(c.Resources()); got != "a1,a2" {
		t.Errorf("no-op drops must leave the order alone, got %q", got)
	}
}

func TestMoveResourceOntoModule_InsertsFirst(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("b1", "Modulo 2"), res("b2", "Modulo 2"))

	c.MoveResourceOntoModule("a1", "Modulo 2")

	if got := ids(c.Resources()); got != "a1,b1,b2" {
		t.Errorf("order: got %q, want a1,b1,b2", got)
	}
	r, _ := c.Get("a1")
	if r.Module != "Modulo 2" {
		t.Error("dragged card must take the drop module")
	}
}

func TestMoveResourceOntoModule_EmptyModuleAppends(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(), res("a1", "Modulo 1"), res("a2", "Modulo 1"))

	c.MoveResourceOntoModule("a1", "Modulo Vazio")

	if got := ids(c.Resources()); got != "a2,a1" {
		t.Errorf("order: got %q, want a2,a1", got)
	}
}

func TestMoveModuleOntoModule_RebuildsResourceOrder(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(),
		res("a1", "Modulo 1"), res("b1", "Modulo 2"), res("a2", "Modulo 1"))

	c.MoveModuleOntoModule("Modulo 2", "Modulo 1")

	mods := c.Modules()
	if len(mods) != 2 || mods[0] != "Modulo 2" || mods[1] != "Modulo 1" {
		t.Fatalf("modules: got %v", mods)
	}
	if got := ids(c.Resources()); got != "b1,a1,a2" {
		t.Errorf("resources must regroup by the new module order, got %q", got)
	}
}

func TestMoveModuleOntoModule_ForwardDragLandsAfterTarget(t *testing.T) {
	kv := newFakeKV()
	kv.values[catalog.ModulesKey] = `["Modulo A","Modulo B","Modulo C"]`
	c := loaded(t, newFakeStore(), kv, res("a1", "Modulo A"))

	c.MoveModuleOntoModule("Modulo A", "Modulo C")

	mods := c.Modules()
	want := []string{"Modulo B", "Modulo C", "Modulo A"}
	for i := range want {
		if mods[i] != want[i] {
			t.Fatalf("module order: got %v, want %v", mods, want)
		}
	}
}

func TestMoveModuleOntoModule_OrphansStayAtEnd(t *testing.T) {
	kv := newFakeKV()
	kv.values[catalog.ModulesKey] = `["Modulo 1","Modulo 2"]`
	c := loaded(t, newFakeStore(), kv,
		res("a1", "Modulo 1"), res("b1", "Modulo 2"), res("x1", "Modulo 1"))

	// Force an orphan by renaming its module off the listed order.
	orphan, _ := c.Get("x1")
	orphan.Module = "Fora da Lista"
	c.Update(orphan)

	c.MoveModuleOntoModule("Modulo 2", "Modulo 1")

	got := ids(c.Resources())
	if !strings.HasSuffix(got, "x1") {
		t.Errorf("orphaned resource must be preserved at the end, got %q", got)
	}
}

func TestMoveModuleOntoModule_NoOps(t *testing.T) {
	c := loaded(t, newFakeStore(), newFakeKV(), res("a1", "Modulo 1"), res("b1", "Modulo 2"))

	c.MoveModuleOntoModule("Modulo 1", "Modulo 1")
	c.MoveModuleOntoModule("Ghost", "Modulo 1")
	c.MoveModuleOntoModule("Modulo 1", "Ghost")

	if got := ids(c.Resources()); got != "a1,b1" {
		t.Errorf("no-op drops must leave the order alone, got %q", got)
	}
}

func TestMutation_PersistsModuleOrder(t *testing.T) {
	store := newFakeStore()
	kv := newFakeKV()
	c := loaded(t, store, kv, res("s1", "Modulo 1"))

	c.Add(res("n1", "Modulo 2"))

	waitSave(t, store)
	select {
	case raw := <-kv.sets:
		if raw != `["Modulo 1","Modulo 2"]` {
			t.Errorf("persisted module order: got %s", raw)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for module order persist")
	}
}

func TestExportSource(t *testing.T) {
	r := res("a1", "Modulo 1")
	r.LockDays = 7
	r.IsManualLock = true
	r.UnlockKey = "chave"
	r.Deliverables = []models.Deliverable{{ID: "d1", Title: "Parte 1", Type: models.TypePDF}}

	src := catalog.ExportSource([]models.Resource{r})

	for _, want := range []string{
		"var Seed = []models.Resource{",
		`ID: "a1",`,
		"Type: models.TypeLink,",
		"LockDays: 7,",
		"IsManualLock: true,",
		`UnlockKey: "chave",`,
		"Deliverables: []models.Deliverable{",
		`Title: "Parte 1",`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("export missing %q in:\n%s", want, src)
		}
	}
}
