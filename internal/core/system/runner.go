package system

import (
	"context"
	"time"

	"github.com/kestrelgame/kestrel/internal/core/ecs"
	"go.uber.org/zap"
)

// Runner drives one World through its phases, one frame per tick.
// All work happens on the goroutine that calls Tick or Run.
type Runner struct {
	world *ecs.World
	order []ecs.Phase
	hooks []TickHook
	tick  uint64
	log   *zap.Logger
}

func NewRunner(world *ecs.World, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		world: world,
		order: DefaultOrder,
		log:   log,
	}
}

// SetOrder replaces the phase sequence run by Tick.
func (r *Runner) SetOrder(order ...ecs.Phase) {
	r.order = order
}

// OnTick adds a hook called after each frame.
func (r *Runner) OnTick(h TickHook) {
	r.hooks = append(r.hooks, h)
}

// Ticks returns the number of frames completed.
func (r *Runner) Ticks() uint64 { return r.tick }

// Tick runs one frame: every phase in order, then the hooks.
func (r *Runner) Tick() {
	for _, phase := range r.order {
		r.world.RunSystems(phase)
	}
	r.tick++
	for _, h := range r.hooks {
		h(r.tick)
	}
}

// TickPhase runs only the systems of phase, outside the frame count.
func (r *Runner) TickPhase(phase ecs.Phase) {
	r.world.RunSystems(phase)
}

// Run ticks every rate until ctx is done or maxTicks frames have run
// (0 means no limit). It returns ctx.Err() when cancelled.
func (r *Runner) Run(ctx context.Context, rate time.Duration, maxTicks uint64) error {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	r.log.Info("frame loop started", zap.Duration("tick_rate", rate), zap.Uint64("max_ticks", maxTicks))
	for {
		select {
		case <-ctx.Done():
			r.log.Info("frame loop stopped", zap.Uint64("ticks", r.tick))
			return ctx.Err()
		case <-ticker.C:
			r.Tick()
			if maxTicks > 0 && r.tick >= maxTicks {
				r.log.Info("frame loop finished", zap.Uint64("ticks", r.tick))
				return nil
			}
		}
	}
}
