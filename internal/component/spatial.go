package component

// Transform is an entity's placement in world space. Y grows downward.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64 // degrees, render-only
	ScaleX   float64
	ScaleY   float64
}

// Velocity is measured in world units per second.
type Velocity struct {
	VX float64
	VY float64
}

// Collider is an axis-aligned box relative to the Transform origin.
// Triggers report overlap but are never pushed apart.
type Collider struct {
	Width     float64
	Height    float64
	OffsetX   float64
	OffsetY   float64
	IsTrigger bool
}

// RigidBody marks an entity as physically simulated.
// Static bodies are neither accelerated by gravity nor moved by collisions.
type RigidBody struct {
	Mass         float64
	UseGravity   bool
	GravityScale float64
	IsStatic     bool
}

// Follow pins an entity's Transform to another entity's plus an offset.
type Follow struct {
	Target  EntityRef
	OffsetX float64
	OffsetY float64
}
