package catalog

import (
	"fmt"
	"strings"

	"github.com/dmagnetico/arsenal/internal/domain/models"
)

// ExportSource renders the given catalog as Go source for the Seed
// literal in seed.go. The publish flow shows this snippet to the admin,
// who pastes it over the existing literal and redeploys; the exported
// resources then win every merge against whatever is persisted.
func ExportSource(resources []models.Resource) string {
	var b strings.Builder
	b.WriteString("var Seed = []models.Resource{\n")
	for _, r := range resources {
		writeResource(&b, r)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeResource(b *strings.Builder, r models.Resource) {
	b.WriteString("\t{\n")
	writeString(b, 2, "ID", r.ID)
	writeString(b, 2, "Title", r.Title)
	writeString(b, 2, "Description", r.Description)
	if r.Type != "" {
		fmt.Fprintf(b, "\t\tType: %s,\n", typeIdent(r.Type))
	}
	writeString(b, 2, "CoverImage", r.CoverImage)
	writeString(b, 2, "Module", r.Module)
	if r.LockDays != 0 {
		fmt.Fprintf(b, "\t\tLockDays: %d,\n", r.LockDays)
	}
	if r.IsManualLock {
		b.WriteString("\t\tIsManualLock: true,\n")
	}
	writeString(b, 2, "CheckoutURL", r.CheckoutURL)
	writeString(b, 2, "UnlockKey", r.UnlockKey)
	writeString(b, 2, "PreviewCTA", r.PreviewCTA)
	writeString(b, 2, "PreviewButtonLabel", r.PreviewButtonLabel)
	writeString(b, 2, "FileBase64", r.FileBase64)
	writeString(b, 2, "ExternalLink", r.ExternalLink)
	if len(r.Deliverables) > 0 {
		b.WriteString("\t\tDeliverables: []models.Deliverable{\n")
		for _, d := range r.Deliverables {
			b.WriteString("\t\t\t{\n")
			writeString(b, 4, "ID", d.ID)
			writeString(b, 4, "Title", d.Title)
			if d.Type != "" {
				fmt.Fprintf(b, "\t\t\t\tType: %s,\n", typeIdent(d.Type))
			}
			writeString(b, 4, "FileBase64", d.FileBase64)
			writeString(b, 4, "ExternalLink", d.ExternalLink)
			b.WriteString("\t\t\t},\n")
		}
		b.WriteString("\t\t},\n")
	}
	if r.CreatedAt != 0 {
		fmt.Fprintf(b, "\t\tCreatedAt: %d,\n", r.CreatedAt)
	}
	b.WriteString("\t},\n")
}

func writeString(b *strings.Builder, depth int, field, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s%s: %q,\n", strings.Repeat("\t", depth), field, value)
}

func typeIdent(t models.ResourceType) string {
	switch t {
	case models.TypePDF:
		return "models.TypePDF"
	case models.TypeAudio:
		return "models.TypeAudio"
	case models.TypeLink:
		return "models.TypeLink"
	}
	return fmt.Sprintf("models.ResourceType(%q)", string(t))
}
