package system

import (
	"fmt"
	"io"

	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
)

// StatsSystem writes one line of world statistics per call. It is
// registered under PhaseRenderImmediate and run by index when the host
// wants output, not as part of every frame. frame reports the number of
// frames completed, usually Runner.Ticks.
type StatsSystem struct {
	out   io.Writer
	frame func() uint64
}

func NewStatsSystem(out io.Writer, frame func() uint64) *StatsSystem {
	return &StatsSystem{out: out, frame: frame}
}

func (s *StatsSystem) Phase() ecs.Phase { return ecs.PhaseRenderImmediate }

func (s *StatsSystem) Update(w *ecs.World) {
	moving := 0
	w.Each(func(ecs.EntityID) { moving++ }, component.TypePosition, component.TypeVelocity)
	fmt.Fprintf(s.out, "frame=%d alive=%d for_count=%d moving=%d pending=%d\n",
		s.frame(), w.Alive(), w.ForCount(), moving, w.Pending())
}
