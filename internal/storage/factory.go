package storage

import (
	"fmt"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/config"
)

// NewStore builds the backend selected by STORAGE_BACKEND.
func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStore(cfg.DataDir, logger)
	case "postgres":
		return NewPostgresStore(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
