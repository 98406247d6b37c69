package arsenal

import (
	"github.com/dmagnetico/arsenal/internal/app/catalog"
	uierrors "github.com/dmagnetico/arsenal/internal/app/features/errors"
	"go.uber.org/zap"
)

// Handler owns the admin curation surface: the drag-ordered catalog
// grid, resource create/edit/delete, module management, and the seed
// export.
type Handler struct {
	Catalog *catalog.Catalog
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs an arsenal Handler.
func NewHandler(cat *catalog.Catalog, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: cat,
		Log:     logger,
		ErrLog:  errLog,
	}
}
