package glossary

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/feliperussi/medwrite-server/internal/domain"
	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/logger"
)

// Service owns the live glossary index. The index itself is immutable;
// Rebuild constructs a fresh one from disk and swaps it in atomically, so
// in-flight matches always run against a consistent snapshot.
type Service struct {
	dir string
	log *logger.Logger

	mu  sync.Mutex // serializes rebuilds
	idx atomic.Pointer[Index]

	onRebuild func(*Index)
}

func NewService(dir string, log *logger.Logger) *Service {
	return &Service{dir: dir, log: log}
}

// SetOnRebuild registers a hook invoked with the new index after every
// successful rebuild. Used to keep derived indexes (full-text search) in
// step with the glossary. Must be set before the first Rebuild.
func (s *Service) SetOnRebuild(fn func(*Index)) {
	s.onRebuild = fn
}

// Rebuild loads every collection from the glossary directory and swaps
// in a freshly built index. On load failure the previous index stays
// live.
func (s *Service) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	collections, err := LoadDir(s.dir, s.log)
	if err != nil {
		return err
	}

	ix := BuildIndex(collections)
	s.idx.Store(ix)

	s.log.Info("glossary index rebuilt",
		"collections", len(collections),
		"aliases", ix.Size(),
	)

	if s.onRebuild != nil {
		s.onRebuild(ix)
	}
	return nil
}

// Index returns the current snapshot, or an UNAVAILABLE error when no
// index has been built yet (e.g. the glossary directory was not
// configured).
func (s *Service) Index() (*Index, error) {
	ix := s.idx.Load()
	if ix == nil {
		return nil, domainerrors.Unavailable("glossary index not loaded")
	}
	return ix, nil
}

// Ready reports whether an index is live.
func (s *Service) Ready() bool {
	return s.idx.Load() != nil
}

// Reset drops the live index. Test helper.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx.Store(nil)
}

func (s *Service) FindMatches(text string) (domain.MatchReport, error) {
	ix, err := s.Index()
	if err != nil {
		return domain.MatchReport{}, err
	}
	return ix.FindMatches(text), nil
}

func (s *Service) FindPresentPhrases(text string) (map[string][]domain.GlossaryEntry, error) {
	ix, err := s.Index()
	if err != nil {
		return nil, err
	}
	return ix.FindPresentPhrases(text), nil
}
