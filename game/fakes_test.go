package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// fakeBody is a frictionless point body. step integrates velocity and
// publishes the streams the way an engine would.
type fakeBody struct {
	id   string
	role shared.Role

	position        mgl64.Vec3
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3
	rotation        mgl64.Quat
	impulses        []mgl64.Vec3

	positionSubs []func(mgl64.Vec3)
	velocitySubs []func(mgl64.Vec3)
	rotationSubs []func(mgl64.Quat)
	collideSubs  []func(shared.Contact)
}

func newFakeBody(role shared.Role, at mgl64.Vec3) *fakeBody {
	return &fakeBody{id: string(role) + "-1", role: role, position: at, rotation: mgl64.QuatIdent()}
}

func (f *fakeBody) ID() string                      { return f.id }
func (f *fakeBody) Role() shared.Role               { return f.role }
func (f *fakeBody) SetPosition(p mgl64.Vec3)        { f.position = p }
func (f *fakeBody) SetVelocity(v mgl64.Vec3)        { f.velocity = v }
func (f *fakeBody) SetAngularVelocity(w mgl64.Vec3) { f.angularVelocity = w }
func (f *fakeBody) SetRotation(q mgl64.Quat)        { f.rotation = q }

// ApplyImpulse treats the body as unit mass
func (f *fakeBody) ApplyImpulse(impulse, _ mgl64.Vec3) {
	f.impulses = append(f.impulses, impulse)
	f.velocity = f.velocity.Add(impulse)
}

func (f *fakeBody) SubscribePosition(fn func(mgl64.Vec3)) func() {
	f.positionSubs = append(f.positionSubs, fn)
	return func() { f.positionSubs = nil }
}

func (f *fakeBody) SubscribeVelocity(fn func(mgl64.Vec3)) func() {
	f.velocitySubs = append(f.velocitySubs, fn)
	return func() { f.velocitySubs = nil }
}

func (f *fakeBody) SubscribeRotation(fn func(mgl64.Quat)) func() {
	f.rotationSubs = append(f.rotationSubs, fn)
	return func() { f.rotationSubs = nil }
}

func (f *fakeBody) OnCollide(fn func(shared.Contact)) func() {
	f.collideSubs = append(f.collideSubs, fn)
	return func() { f.collideSubs = nil }
}

func (f *fakeBody) step(dt float64) {
	f.position = f.position.Add(f.velocity.Mul(dt))
	f.publish()
}

func (f *fakeBody) publish() {
	for _, fn := range f.positionSubs {
		fn(f.position)
	}
	for _, fn := range f.velocitySubs {
		fn(f.velocity)
	}
	for _, fn := range f.rotationSubs {
		fn(f.rotation)
	}
}
