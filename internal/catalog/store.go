package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store wraps a Catalog loaded from a directory of CSV files, reloadable at
// runtime. Concurrent Reload calls against the same directory are coalesced
// through a singleflight.Group so two simultaneous requests don't race to
// parse the same files twice, mirroring esi.OrderCache's request coalescing.
type Store struct {
	dir string

	mu  sync.RWMutex
	cur *Catalog

	group singleflight.Group
}

// NewStore creates a Store bound to dir but does not load anything yet —
// call Reload (or Load) before first use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load performs an initial synchronous load. It is equivalent to Reload but
// named for readability at startup call sites.
func (s *Store) Load(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload re-parses the three CSV tables from disk and swaps them in
// atomically. Concurrent reloads are deduped via singleflight so only one
// actually hits the filesystem at a time.
func (s *Store) Reload(ctx context.Context) error {
	_, err, _ := s.group.Do(s.dir, func() (interface{}, error) {
		games, err := LoadGames(filepath.Join(s.dir, "games.csv"))
		if err != nil {
			return nil, fmt.Errorf("load games: %w", err)
		}
		packages, err := LoadPackages(filepath.Join(s.dir, "streaming_package.csv"))
		if err != nil {
			return nil, fmt.Errorf("load packages: %w", err)
		}
		offers, err := LoadOffers(filepath.Join(s.dir, "streaming_offer.csv"))
		if err != nil {
			return nil, fmt.Errorf("load offers: %w", err)
		}
		cat := New(games, packages, offers)

		s.mu.Lock()
		s.cur = cat
		s.mu.Unlock()
		return cat, nil
	})
	return err
}

// Current returns the most recently loaded Catalog, or nil if none has been
// loaded yet.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Ready reports whether a catalog has been successfully loaded.
func (s *Store) Ready() bool {
	return s.Current() != nil
}
