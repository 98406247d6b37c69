package library

import (
	"github.com/dmagnetico/arsenal/internal/app/catalog"
	uierrors "github.com/dmagnetico/arsenal/internal/app/features/errors"
	"github.com/dmagnetico/arsenal/internal/app/system/deliverable"
	"github.com/dmagnetico/arsenal/internal/app/system/unlock"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Handler owns the member-facing library: the module-grouped resource
// grid, the unlock flow, and deliverable opening.
type Handler struct {
	Catalog *catalog.Catalog
	Vault   *unlock.Vault
	Blobs   *deliverable.Registry
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger

	sanitize *bluemonday.Policy
}

// NewHandler constructs a library Handler.
func NewHandler(cat *catalog.Catalog, vault *unlock.Vault, blobs *deliverable.Registry, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:  cat,
		Vault:    vault,
		Blobs:    blobs,
		Log:      logger,
		ErrLog:   errLog,
		sanitize: bluemonday.UGCPolicy(),
	}
}
