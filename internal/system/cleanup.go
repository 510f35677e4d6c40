package system

import (
	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// Phase Cleanup.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Phase() ecs.Phase { return ecs.PhaseCleanup }

func (s *CleanupSystem) Update(w *ecs.World) {
	if n := w.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Int("alive", w.Alive()))
	}
}
