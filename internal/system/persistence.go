package system

import (
	"context"
	"time"

	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"github.com/kestrelgame/kestrel/internal/persist"
	"go.uber.org/zap"
)

// SnapshotStore is the write side of persist.SnapshotRepo.
type SnapshotStore interface {
	Save(ctx context.Context, tick uint64, forCount uint32, rows []persist.SnapshotRow) (int64, error)
}

// PersistenceSystem writes a world snapshot every interval frames.
// Phase Cleanup, after deferred destruction has been flushed.
type PersistenceSystem struct {
	store     SnapshotStore
	log       *zap.Logger
	timeout   time.Duration
	tickCount uint64
	interval  uint64
	saved     int
}

func NewPersistenceSystem(store SnapshotStore, log *zap.Logger, intervalTicks uint64) *PersistenceSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PersistenceSystem{
		store:    store,
		log:      log,
		timeout:  10 * time.Second,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() ecs.Phase { return ecs.PhaseCleanup }

// Saved returns the number of snapshots written successfully.
func (s *PersistenceSystem) Saved() int { return s.saved }

func (s *PersistenceSystem) Update(w *ecs.World) {
	s.tickCount++
	if s.interval == 0 || s.tickCount%s.interval != 0 {
		return
	}
	s.save(w, s.tickCount)
}

// SaveNow writes a snapshot immediately. Called at shutdown.
func (s *PersistenceSystem) SaveNow(w *ecs.World) bool {
	return s.save(w, s.tickCount)
}

func (s *PersistenceSystem) save(w *ecs.World, tick uint64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows := persist.RowsFromRecords(w.Snapshot())
	id, err := s.store.Save(ctx, tick, w.ForCount(), rows)
	if err != nil {
		s.log.Error("snapshot save failed", zap.Uint64("tick", tick), zap.Error(err))
		return false
	}
	s.saved++
	s.log.Info("snapshot saved", zap.Int64("id", id), zap.Uint64("tick", tick), zap.Int("entities", len(rows)))
	return true
}
