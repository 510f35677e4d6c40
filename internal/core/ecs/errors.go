package ecs

import "errors"

// Diagnostic classes. The core never returns these; they are attached to
// log lines and used as panic values when the world runs in strict mode.
var (
	ErrStackFull         = errors.New("index stack full")
	ErrStackEmpty        = errors.New("index stack empty")
	ErrAlreadyRegistered = errors.New("component type already registered")
	ErrNotRegistered     = errors.New("component type not registered")
	ErrTypeMismatch      = errors.New("component payload type mismatch")
	ErrComponentPresent  = errors.New("entity already has component")
	ErrComponentMissing  = errors.New("entity does not have component")
	ErrStaleEntity       = errors.New("stale entity id")
	ErrRegistryFull      = errors.New("system registry full")
	ErrNoSuchSystem      = errors.New("no system at index")
	ErrZeroCapacity      = errors.New("zero capacity")
)
