package models

// ResourceType identifies what a resource (or deliverable) opens as.
// The type drives the default icon and access action when a resource
// has no explicit deliverable list.
type ResourceType string

const (
	TypePDF   ResourceType = "PDF"
	TypeAudio ResourceType = "Audio"
	TypeLink  ResourceType = "Link"
)

// DefaultModule is the module a resource belongs to when none was set.
// The literal is applied at read time (EffectiveModule) and never
// written back into the stored document.
const DefaultModule = "Modulo 1"

// Deliverable is one concrete openable item belonging to a resource:
// either an embedded base64 payload or an external link, never both.
type Deliverable struct {
	ID           string       `bson:"id" json:"id"`
	Title        string       `bson:"title" json:"title"`
	Type         ResourceType `bson:"type" json:"type"`
	FileBase64   string       `bson:"file_base64,omitempty" json:"fileBase64,omitempty"`
	ExternalLink string       `bson:"external_link,omitempty" json:"externalLink,omitempty"`
}

// Resource is a catalog entry representing one piece of gated content.
//
// Access gating is one of two mutually exclusive mechanisms:
//   - time lock: LockDays days after the member's join date
//   - manual lock (IsManualLock): a key code, independent of elapsed time
//
// FileBase64/ExternalLink are the legacy single-deliverable fields; when
// Deliverables is empty a synthetic deliverable is derived from them
// (see the deliverable package).
type Resource struct {
	ID          string       `bson:"_id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description"`
	Type        ResourceType `bson:"type" json:"type"`

	CoverImage string `bson:"cover_image" json:"coverBase64"`
	Module     string `bson:"module,omitempty" json:"module,omitempty"`

	LockDays     int    `bson:"lock_days" json:"lockDays"`
	IsManualLock bool   `bson:"is_manual_lock" json:"isManualLock"`
	CheckoutURL  string `bson:"checkout_url,omitempty" json:"checkoutUrl,omitempty"`
	UnlockKey    string `bson:"unlock_key,omitempty" json:"unlockKey,omitempty"`

	PreviewCTA         string `bson:"preview_cta,omitempty" json:"previewCta,omitempty"`
	PreviewButtonLabel string `bson:"preview_button_label,omitempty" json:"previewButtonLabel,omitempty"`

	FileBase64   string        `bson:"file_base64,omitempty" json:"fileBase64,omitempty"`
	ExternalLink string        `bson:"external_link,omitempty" json:"externalLink,omitempty"`
	Deliverables []Deliverable `bson:"deliverables,omitempty" json:"deliverables,omitempty"`

	// CreatedAt is epoch milliseconds, assigned once at creation.
	CreatedAt int64 `bson:"created_at" json:"createdAt"`
}

// EffectiveModule returns the module this resource belongs to, falling
// back to DefaultModule when the field was never set. All module
// grouping and reordering logic reads through this accessor so the
// fallback lives in exactly one place.
func (r *Resource) EffectiveModule() string {
	if r.Module == "" {
		return DefaultModule
	}
	return r.Module
}
