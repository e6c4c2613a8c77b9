// Package store persists summaries and their drafts in Badger. Keys are
// prefixed per entity type; draft keys embed the zero-padded draft number
// so a prefix scan yields drafts in submission order.
package store

import (
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *logger.Logger

	// draftMu serializes draft numbering per process.
	draftMu sync.Mutex

	Summaries *Entity[domain.Summary]
	Drafts    *Entity[domain.Draft]
}

// New opens (or creates) the database at path.
func New(path string, log *logger.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Badger's own logging is too chatty
	opts.SyncWrites = true       // survive crashes without corruption
	opts.CompactL0OnClose = true // faster startup after clean shutdown

	db, err := badger.Open(opts)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeInternal, "opening badger db at %q", path)
	}

	s := &Store{db: db, logger: log}

	s.Summaries = NewEntity[domain.Summary](s, "summary:")
	s.Drafts = NewEntity[domain.Draft](s, "draft:").
		WithIndex("draft_id", func(d *domain.Draft) []string {
			return []string{d.DraftID}
		})

	if log != nil {
		log.Info("database opened", "path", path)
	}
	return s, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database")
	}
	return s.db.Close()
}
