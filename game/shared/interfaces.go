package shared

import "github.com/go-gl/mathgl/mgl64"

// Role tags a physics body so collision callbacks can tell participants apart
type Role string

const (
	RoleVehicle  Role = "vehicle"
	RoleBall     Role = "ball"
	RoleFlagpole Role = "flagpole"
	RoleFairway  Role = "fairway"
	RoleRough    Role = "rough"
	RoleBarrier  Role = "barrier"
)

// IsTerrain reports whether the role is a terrain zone the ball can lie on
func (r Role) IsTerrain() bool {
	return r == RoleFairway || r == RoleRough
}

// Contact is delivered to a body's collide callbacks once per touching pair per step.
// Velocities are sampled before the engine resolves the contact.
type Contact struct {
	PairKey       string
	Step          uint64
	Self          Role
	SelfID        string
	Other         Role
	OtherID       string
	SelfVelocity  mgl64.Vec3
	OtherVelocity mgl64.Vec3
	Normal        mgl64.Vec3
}

// RelativeVelocity is the velocity of self as seen from other
func (c Contact) RelativeVelocity() mgl64.Vec3 {
	return c.SelfVelocity.Sub(c.OtherVelocity)
}

// Body is the capability a controller gets for the one physics body it owns.
// Rotation is write-only: controllers keep their own heading.
type Body interface {
	ID() string
	Role() Role

	SetPosition(p mgl64.Vec3)
	SetVelocity(v mgl64.Vec3)
	SetAngularVelocity(w mgl64.Vec3)
	SetRotation(q mgl64.Quat)
	ApplyImpulse(impulse, worldPoint mgl64.Vec3)

	SubscribePosition(fn func(mgl64.Vec3)) (unsubscribe func())
	SubscribeVelocity(fn func(mgl64.Vec3)) (unsubscribe func())
	SubscribeRotation(fn func(mgl64.Quat)) (unsubscribe func())
	OnCollide(fn func(Contact)) (unsubscribe func())
}

// Stepper advances the physics engine by one fixed step
type Stepper interface {
	Step(dt float64)
}
