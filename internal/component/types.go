package component

import "github.com/kestrelgame/kestrel/internal/core/ecs"

// Component type tags. Each names one pool in the World; Count is the
// componentCount the World must be built with.
const (
	TypePosition ecs.ComponentType = iota
	TypeVelocity
	TypeHealth
	TypeLifetime
	TypeTag

	Count
)

var typeNames = [...]string{
	TypePosition: "position",
	TypeVelocity: "velocity",
	TypeHealth:   "health",
	TypeLifetime: "lifetime",
	TypeTag:      "tag",
}

// Name returns the lowercase name of a component type, or "" if unknown.
func Name(typ ecs.ComponentType) string {
	if int(typ) >= len(typeNames) {
		return ""
	}
	return typeNames[typ]
}
