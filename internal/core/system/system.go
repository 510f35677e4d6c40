package system

import "github.com/kestrelgame/kestrel/internal/core/ecs"

// DefaultOrder is the phase sequence of one frame. PhaseRenderImmediate is
// left out: those systems are run by index when the host wants a draw.
var DefaultOrder = []ecs.Phase{
	ecs.PhasePreUpdate,  // 0: deliver last frame's events
	ecs.PhaseUpdate,     // 1: game logic
	ecs.PhasePostUpdate, // 2: spawning
	ecs.PhaseRender,     // 3: buffered drawing
	ecs.PhaseCleanup,    // 4: destroy queued entities
}

// TickHook runs after every frame with the number of frames completed so far.
type TickHook func(tick uint64)
