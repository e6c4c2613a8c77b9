package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/feliperussi/medwrite-server/internal/config"
	"github.com/feliperussi/medwrite-server/internal/glossary"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/search"
	"github.com/feliperussi/medwrite-server/internal/watcher"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.GlossaryIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve glossary search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewGlossaryIndex(log)
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{GlossaryIndex: index}, nil
}

// GlossaryServiceHandle wraps the glossary service for lifecycle management.
type GlossaryServiceHandle struct {
	*glossary.Service
}

// ProvideGlossaryService provides the glossary matching service with the
// search index wired to its rebuild hook. The initial load happens here so
// the server starts with a ready index.
func ProvideGlossaryService(i do.Injector) (*GlossaryServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)

	svc := glossary.NewService(cfg.Glossary.Dir, log)
	svc.SetOnRebuild(func(idx *glossary.Index) {
		if err := searchHandle.Rebuild(idx.AllEntries()); err != nil {
			log.Error("Search index rebuild failed", "error", err)
		}
	})

	if cfg.Glossary.Dir == "" {
		log.Warn("No glossary directory configured, glossary endpoints report unavailable")
		return &GlossaryServiceHandle{Service: svc}, nil
	}

	if err := svc.Rebuild(context.Background()); err != nil {
		return nil, err
	}

	return &GlossaryServiceHandle{Service: svc}, nil
}

// GlossaryWatcherHandle wraps the glossary file watcher with shutdown capability.
type GlossaryWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *GlossaryWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Stop()
}

// ProvideGlossaryWatcher provides the file watcher that rebuilds the
// glossary index when source files change. Disabled when watching is off
// or no glossary directory is configured.
func ProvideGlossaryWatcher(i do.Injector) (*GlossaryWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	glossaryHandle := do.MustInvoke[*GlossaryServiceHandle](i)

	if !cfg.Glossary.Watch || cfg.Glossary.Dir == "" {
		return &GlossaryWatcherHandle{}, nil
	}

	w, err := watcher.New(cfg.Glossary.Dir, 0, glossaryHandle.Rebuild, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Glossary watcher started", "dir", cfg.Glossary.Dir)

	return &GlossaryWatcherHandle{Watcher: w, cancel: cancel}, nil
}
