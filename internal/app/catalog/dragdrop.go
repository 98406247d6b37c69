package catalog

import "github.com/dmagnetico/arsenal/internal/domain/models"

// The drag protocol mirrors the curation grid: a resource card can be
// dropped on another card or on a module header, and a module header
// can be dropped on another module header. All three moves are
// full-state mutations and persist like any other.

// MoveResourceOntoResource removes the dragged resource, adopts the
// target's raw module value, and reinserts it at the target's position
// as counted after the removal. Dropping a card on itself, or with a
// stale drag id, is a no-op. A target that vanished between lookup and
// reinsertion appends to the end.
func (c *Catalog) MoveResourceOntoResource(dragID, targetID string) {
	if dragID == targetID {
		return
	}

	c.mu.Lock()
	dragIdx := indexByID(c.resources, dragID)
	if dragIdx < 0 {
		c.mu.Unlock()
		return
	}
	target, ok := resourceByID(c.resources, targetID)
	if !ok {
		c.mu.Unlock()
		return
	}

	dragged := c.resources[dragIdx]
	dragged.Module = target.Module

	rest := append(append([]models.Resource(nil), c.resources[:dragIdx]...), c.resources[dragIdx+1:]...)
	dropIdx := indexByID(rest, targetID)
	if dropIdx < 0 {
		c.resources = append(rest, dragged)
	} else {
		c.resources = append(rest[:dropIdx], append([]models.Resource{dragged}, rest[dropIdx:]...)...)
	}
	c.mu.Unlock()
	c.schedulePersist()
}

// MoveResourceOntoModule reassigns the dragged resource to the named
// module and places it first within that module, right before its
// current first member. A module with no members yet takes the card at
// the end of the list.
func (c *Catalog) MoveResourceOntoModule(dragID, module string) {
	c.mu.Lock()
	dragIdx := indexByID(c.resources, dragID)
	if dragIdx < 0 {
		c.mu.Unlock()
		return
	}

	dragged := c.resources[dragIdx]
	dragged.Module = module

	rest := append(append([]models.Resource(nil), c.resources[:dragIdx]...), c.resources[dragIdx+1:]...)
	insertIdx := -1
	for i, r := range rest {
		if r.EffectiveModule() == module {
			insertIdx = i
			break
		}
	}
	if insertIdx < 0 {
		c.resources = append(rest, dragged)
	} else {
		c.resources = append(rest[:insertIdx], append([]models.Resource{dragged}, rest[insertIdx:]...)...)
	}
	c.mu.Unlock()
	c.schedulePersist()
}

// MoveModuleOntoModule moves the dragged module name to the target's
// current index in the module order and rebuilds the resource list to
// match: the members of each module in the new order, concatenated,
// with resources of unlisted modules preserved at the end in their
// current relative order. Unknown names and self-drops are no-ops.
//
// The insertion index is the target's pre-removal index, so dragging a
// module forward lands it after the target ([A,B,C] with A dropped on
// C yields [B,C,A]) while dragging backward lands it before.
func (c *Catalog) MoveModuleOntoModule(drag, target string) {
	if drag == target {
		return
	}

	c.mu.Lock()
	fromIdx := indexOf(c.modules, drag)
	toIdx := indexOf(c.modules, target)
	if fromIdx < 0 || toIdx < 0 {
		c.mu.Unlock()
		return
	}

	order := append([]string(nil), c.modules...)
	order = append(order[:fromIdx], order[fromIdx+1:]...)
	order = append(order[:toIdx], append([]string{drag}, order[toIdx:]...)...)
	c.modules = order

	listed := make(map[string]struct{}, len(order))
	for _, m := range order {
		listed[m] = struct{}{}
	}

	rebuilt := make([]models.Resource, 0, len(c.resources))
	for _, m := range order {
		for _, r := range c.resources {
			if r.EffectiveModule() == m {
				rebuilt = append(rebuilt, r)
			}
		}
	}
	for _, r := range c.resources {
		if _, ok := listed[r.EffectiveModule()]; !ok {
			rebuilt = append(rebuilt, r)
		}
	}
	c.resources = rebuilt
	c.mu.Unlock()
	c.schedulePersist()
}

func indexByID(list []models.Resource, id string) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func resourceByID(list []models.Resource, id string) (models.Resource, bool) {
	if i := indexByID(list, id); i >= 0 {
		return list[i], true
	}
	return models.Resource{}, false
}

func indexOf(list []string, name string) int {
	for i, m := range list {
		if m == name {
			return i
		}
	}
	return -1
}
