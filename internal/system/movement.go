package system

import (
	"github.com/kestrelgame/kestrel/internal/component"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
)

// MovementSystem applies Velocity to Position once per frame.
// Phase Update.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Phase() ecs.Phase { return ecs.PhaseUpdate }

func (s *MovementSystem) Update(w *ecs.World) {
	ecs.Each2(w, component.TypePosition, component.TypeVelocity,
		func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
			p.X += v.DX
			p.Y += v.DY
		})
}
