package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// Body is a rigid body in a World. Controllers see it through shared.Body.
type Body struct {
	id    string
	index int
	role  shared.Role
	shape Shape

	mass    float64
	invMass float64

	position        mgl64.Vec3
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3
	rotation        mgl64.Quat

	linearDamping  float64
	angularDamping float64
	fixedRotation  bool
	material       Material

	allowSleep      bool
	sleepSpeedLimit float64
	sleepTimeLimit  float64
	idleTime        float64
	sleeping        bool

	positionSubs subscribers[mgl64.Vec3]
	velocitySubs subscribers[mgl64.Vec3]
	rotationSubs subscribers[mgl64.Quat]
	collideSubs  subscribers[shared.Contact]
}

var _ shared.Body = (*Body)(nil)

func newBody(id string, index int, def BodyDef) *Body {
	b := &Body{
		id:              id,
		index:           index,
		role:            def.Role,
		shape:           def.Shape,
		mass:            def.Mass,
		position:        def.Position,
		rotation:        mgl64.QuatRotate(def.Yaw, mgl64.Vec3{0, 1, 0}),
		linearDamping:   def.LinearDamping,
		angularDamping:  def.AngularDamping,
		fixedRotation:   def.FixedRotation,
		material:        def.Material,
		allowSleep:      def.AllowSleep,
		sleepSpeedLimit: def.SleepSpeedLimit,
		sleepTimeLimit:  def.SleepTimeLimit,
	}
	if def.Mass > 0 {
		b.invMass = 1 / def.Mass
	}
	return b
}

// ID returns the body's world-unique id
func (b *Body) ID() string { return b.id }

// Role returns the body's role tag
func (b *Body) Role() shared.Role { return b.role }

// IsStatic reports whether the body has infinite mass
func (b *Body) IsStatic() bool { return b.invMass == 0 }

// Sleeping reports whether the body is asleep
func (b *Body) Sleeping() bool { return b.sleeping }

// Position returns the current position. Only the world and tests read this;
// controllers use the subscription stream.
func (b *Body) Position() mgl64.Vec3 { return b.position }

// Velocity returns the current linear velocity
func (b *Body) Velocity() mgl64.Vec3 { return b.velocity }

// AngularVelocity returns the current angular velocity
func (b *Body) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.position = p
	b.wake()
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.velocity = v
	b.wake()
}

func (b *Body) SetAngularVelocity(w mgl64.Vec3) {
	if b.IsStatic() || b.fixedRotation {
		b.angularVelocity = mgl64.Vec3{}
		return
	}
	b.angularVelocity = w
	b.wake()
}

func (b *Body) SetRotation(q mgl64.Quat) {
	b.rotation = q.Normalize()
}

// ApplyImpulse changes momentum instantly. Off-center impulses add spin
// unless rotation is fixed.
func (b *Body) ApplyImpulse(impulse, worldPoint mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.velocity = b.velocity.Add(impulse.Mul(b.invMass))
	if !b.fixedRotation {
		if inertia := b.inertia(); inertia > 0 {
			arm := worldPoint.Sub(b.position)
			b.angularVelocity = b.angularVelocity.Add(arm.Cross(impulse).Mul(1 / inertia))
		}
	}
	b.wake()
}

func (b *Body) SubscribePosition(fn func(mgl64.Vec3)) func() {
	return b.positionSubs.add(fn)
}

func (b *Body) SubscribeVelocity(fn func(mgl64.Vec3)) func() {
	return b.velocitySubs.add(fn)
}

func (b *Body) SubscribeRotation(fn func(mgl64.Quat)) func() {
	return b.rotationSubs.add(fn)
}

func (b *Body) OnCollide(fn func(shared.Contact)) func() {
	return b.collideSubs.add(fn)
}

func (b *Body) wake() {
	b.sleeping = false
	b.idleTime = 0
}

// yaw reads the heading out of the rotation, assuming rotation about +Y
func (b *Body) yaw() float64 {
	q := b.rotation
	return math.Atan2(2*(q.W*q.V[1]+q.V[0]*q.V[2]), 1-2*(q.V[1]*q.V[1]+q.V[0]*q.V[0]))
}

// inertia is a scalar approximation good enough for spheres and near-cubes
func (b *Body) inertia() float64 {
	switch b.shape.Kind {
	case ShapeSphere:
		return 0.4 * b.mass * b.shape.Radius * b.shape.Radius
	case ShapeBox:
		h := b.shape.HalfExtents
		return b.mass * (h.X()*h.X() + h.Y()*h.Y() + h.Z()*h.Z()) * 4 / 12
	}
	return 0
}

func (b *Body) updateSleep(dt float64) {
	if !b.allowSleep || b.sleeping || b.IsStatic() {
		return
	}
	if b.velocity.Len() < b.sleepSpeedLimit && b.angularVelocity.Len() < b.sleepSpeedLimit {
		b.idleTime += dt
		if b.idleTime >= b.sleepTimeLimit {
			b.sleeping = true
			b.velocity = mgl64.Vec3{}
			b.angularVelocity = mgl64.Vec3{}
		}
		return
	}
	b.idleTime = 0
}

func (b *Body) publish() {
	b.positionSubs.emit(b.position)
	b.velocitySubs.emit(b.velocity)
	b.rotationSubs.emit(b.rotation)
}

// subscribers keeps callbacks in registration order
type subscribers[T any] struct {
	next    int
	entries []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.next++
	id := s.next
	s.entries = append(s.entries, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

func (s *subscribers[T]) emit(v T) {
	if len(s.entries) == 0 {
		return
	}
	entries := make([]subscriber[T], len(s.entries))
	copy(entries, s.entries)
	for _, e := range entries {
		e.fn(v)
	}
}
