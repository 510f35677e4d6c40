package event

import "github.com/kestrelgame/kestrel/internal/core/ecs"

// EntityExpired is emitted when an entity's Lifetime runs out.
type EntityExpired struct {
	Entity ecs.EntityID
}

// EntityKilled is emitted when an entity's Health drops to zero.
type EntityKilled struct {
	Entity ecs.EntityID
	Tick   uint64
}
