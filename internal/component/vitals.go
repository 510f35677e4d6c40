package component

// Health drops toward zero as DamagePerTick is applied; at zero the entity is killed.
type Health struct {
	HP            int32
	MaxHP         int32
	DamagePerTick int32
}

// Lifetime counts down frames until the entity expires.
type Lifetime struct {
	Ticks int32
}

// Tag names the prefab an entity was spawned from.
type Tag struct {
	Prefab string
}
