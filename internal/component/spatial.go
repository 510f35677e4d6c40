package component

// Position is a world-space location.
type Position struct {
	X float64
	Y float64
}

// Velocity is applied to Position once per frame.
type Velocity struct {
	DX float64
	DY float64
}
