// Package knowledge loads and caches the FAQ corpus, business metadata and
// troubleshooting guides that the retrieval engine ranks against.
//
// All knowledge is read from YAML sources in a single directory and held in
// an immutable Snapshot. Loading degrades gracefully: a missing or malformed
// source logs a warning and yields an empty section, never an error. The
// first load is guarded with singleflight so concurrent cold-start requests
// share one read; Reload swaps the snapshot atomically so readers always see
// either the old or the new state, never a mix.
package knowledge

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store owns the cached knowledge snapshot.
type Store struct {
	dir    string
	logger *zap.Logger

	group singleflight.Group
	snap  atomic.Pointer[Snapshot]
}

// NewStore creates a store reading from dir. Nothing is loaded until the
// first Snapshot call.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("knowledge directory is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Snapshot returns the cached knowledge snapshot, loading it on first use.
// Concurrent first calls share a single load.
func (s *Store) Snapshot(ctx context.Context) *Snapshot {
	if snap := s.snap.Load(); snap != nil {
		return snap
	}

	v, _, _ := s.group.Do("load", func() (interface{}, error) {
		// A racing caller may have finished loading while this one waited
		// on the flight group.
		if snap := s.snap.Load(); snap != nil {
			return snap, nil
		}
		snap := s.load(ctx)
		s.snap.Store(snap)
		return snap, nil
	})
	return v.(*Snapshot)
}

// Reload rebuilds the snapshot from the source directory and swaps it in.
// Readers holding the previous snapshot keep a consistent view.
func (s *Store) Reload(ctx context.Context) *Snapshot {
	snap := s.load(ctx)
	s.snap.Store(snap)
	s.logger.Info("knowledge snapshot reloaded",
		zap.Int("categories", len(snap.Categories)),
		zap.Int("items", len(snap.Items)))
	return snap
}

func (s *Store) load(_ context.Context) *Snapshot {
	categories := s.loadCategories()
	snap := &Snapshot{
		Categories: categories,
		Items:      flattenItems(categories),
		Business:   s.loadBusinessInfo(),
		Guides: map[Bucket]*GuideIndex{
			BucketComputer: s.loadGuides(BucketComputer),
			BucketMobile:   s.loadGuides(BucketMobile),
		},
	}

	s.logger.Info("knowledge loaded",
		zap.String("dir", s.dir),
		zap.Int("categories", len(snap.Categories)),
		zap.Int("items", len(snap.Items)),
		zap.Bool("business_info", snap.Business != nil))
	return snap
}
