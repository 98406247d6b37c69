package deliverable

import (
	"strings"

	"github.com/dmagnetico/arsenal/internal/domain/models"
)

// ActionKind discriminates what opening a deliverable does.
type ActionKind int

const (
	// ActionNone means the deliverable has neither payload nor link.
	ActionNone ActionKind = iota
	// ActionBlob redirects the member to a temporary blob URL serving
	// the decoded payload.
	ActionBlob
	// ActionLink redirects the member to a normalized external URL.
	ActionLink
)

// Action is the resolved side effect of opening one deliverable.
type Action struct {
	Kind ActionKind
	URL  string
}

// NormalizeLink prefixes https:// when the stored link carries no
// scheme. Admin-entered links are frequently bare hostnames.
func NormalizeLink(link string) string {
	if strings.HasPrefix(link, "http") {
		return link
	}
	return "https://" + link
}

// Open maps a deliverable onto its access action. File payloads for
// PDF/Audio are staged in the registry under a temporary token URL;
// links (and the payload-less fallback) become external redirects. A
// deliverable with neither is a no-op, never an error.
func Open(d models.Deliverable, reg *Registry) (Action, error) {
	switch d.Type {
	case models.TypePDF, models.TypeAudio:
		if d.FileBase64 != "" {
			token, err := reg.Stage(d.FileBase64)
			if err != nil {
				return Action{}, err
			}
			return Action{Kind: ActionBlob, URL: "/blob/" + token}, nil
		}
		if d.ExternalLink != "" {
			return Action{Kind: ActionLink, URL: NormalizeLink(d.ExternalLink)}, nil
		}
	case models.TypeLink:
		if d.ExternalLink != "" {
			return Action{Kind: ActionLink, URL: NormalizeLink(d.ExternalLink)}, nil
		}
	}
	return Action{Kind: ActionNone}, nil
}
