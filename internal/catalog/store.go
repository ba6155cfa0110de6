package catalog

import (
	"errors"
	"sync"
	"time"

	"trainingcal/internal/calendar"
	appLog "trainingcal/internal/log"
	"trainingcal/internal/model"
)

// Snapshot is an immutable loaded catalog together with its index.
type Snapshot struct {
	Catalog  *model.Catalog
	Index    *calendar.Index
	Issues   []Issue
	LoadedAt time.Time
}

// NewSnapshot indexes and validates c.
func NewSnapshot(c *model.Catalog) *Snapshot {
	return &Snapshot{
		Catalog:  c,
		Index:    calendar.NewIndex(c),
		Issues:   Validate(c),
		LoadedAt: time.Now(),
	}
}

// Store holds the current catalog snapshot. Reloads swap the snapshot
// atomically; readers keep using the snapshot they got.
type Store struct {
	path string
	opts LoadOptions

	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore returns a Store reading from path. It holds no snapshot until
// Reload or Set is called.
func NewStore(path string, opts LoadOptions) *Store {
	return &Store{path: path, opts: opts}
}

// Reload reads the catalog file again. On failure the previous snapshot is
// kept and the error returned.
func (s *Store) Reload() error {
	if s.path == "" {
		return errors.New("catalog store has no path")
	}
	c, err := Load(s.path, s.opts)
	if err != nil {
		appLog.Error("catalog reload failed; keeping previous snapshot", err, "path", s.path)
		return err
	}
	snap := s.Set(c)
	appLog.Info("catalog loaded",
		"path", s.path,
		"trainings", len(c.Trainings),
		"sessions", len(c.Sessions),
		"issues", len(snap.Issues),
	)
	for _, is := range snap.Issues {
		appLog.Warn("catalog issue", "entity", is.Entity, "id", is.ID, "detail", is.Detail)
	}
	return nil
}

// Set replaces the snapshot with one built from c and returns it.
func (s *Store) Set(c *model.Catalog) *Snapshot {
	snap := NewSnapshot(c)
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
