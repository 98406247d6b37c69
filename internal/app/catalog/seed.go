package catalog

import "github.com/dmagnetico/arsenal/internal/domain/models"

// Seed is the compiled-in catalog every deployment starts from. The
// publish action on the curation surface exports the live catalog as a
// replacement for this literal; paste the exported snippet over it and
// redeploy to bake the current state in.
//
// Seed entries always win id collisions against persisted rows and are
// listed ahead of them.
var Seed = []models.Resource{
	{
		ID:           "seed-guia-magnetico",
		Title:        "Guia do Magnetismo Pessoal",
		Description:  "O manual de base para os primeiros 30 dias.",
		Type:         models.TypePDF,
		Module:       models.DefaultModule,
		ExternalLink: "dominiomagnetico.com/guia",
		CreatedAt:    1735689600000,
	},
	{
		ID:           "seed-ritual-diario",
		Title:        "Ritual Diario",
		Description:  "Audio de acompanhamento, um bloco por semana.",
		Type:         models.TypeAudio,
		Module:       models.DefaultModule,
		LockDays:     7,
		ExternalLink: "dominiomagnetico.com/ritual",
		CreatedAt:    1735689600000,
	},
}
