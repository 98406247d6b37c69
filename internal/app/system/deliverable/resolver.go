// Package deliverable resolves a resource into its openable items and
// turns each item into a concrete open action.
//
// Resources created before multi-deliverable support carry a single
// payload/link directly on the resource; Resolve hides that split so no
// consumer ever branches on the legacy shape.
package deliverable

import (
	"github.com/dmagnetico/arsenal/internal/domain/models"
)

// Identity of the synthesized deliverable on the legacy path. These
// exact values are persisted into member-visible state (unlock records,
// open URLs) and must not change.
const (
	PrimaryID    = "primary"
	PrimaryTitle = "Recurso Principal"
)

// Resolve returns the ordered list of items a resource opens to. An
// explicit deliverable list is returned untouched; otherwise a single
// deliverable is synthesized from the resource's own type and
// payload/link fields.
func Resolve(r models.Resource) []models.Deliverable {
	if len(r.Deliverables) > 0 {
		return r.Deliverables
	}
	return []models.Deliverable{{
		ID:           PrimaryID,
		Title:        PrimaryTitle,
		Type:         r.Type,
		FileBase64:   r.FileBase64,
		ExternalLink: r.ExternalLink,
	}}
}

// Find returns the deliverable with the given id from the resolved
// list, or false when the id is stale.
func Find(r models.Resource, id string) (models.Deliverable, bool) {
	for _, d := range Resolve(r) {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deliverable{}, false
}
