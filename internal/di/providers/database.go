package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/feliperussi/medwrite-server/internal/config"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	basePath := cfg.Data.BasePath
	if basePath == "" {
		basePath = "data"
	}

	dbPath := filepath.Join(basePath, "medwrite.db")
	st, err := store.New(dbPath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database opened", "path", dbPath)

	return &StoreHandle{Store: st}, nil
}
