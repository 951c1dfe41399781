package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/game/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func groundDef() BodyDef {
	return BodyDef{
		Role:     shared.RoleFairway,
		Shape:    Box(mgl64.Vec3{50, 0.5, 50}),
		Position: mgl64.Vec3{0, -0.25, 0},
		Material: Material{Friction: 0.3, Restitution: 0.1},
	}
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

func TestBallRestsOnGround(t *testing.T) {
	w := NewWorld()
	w.CreateBody(groundDef())
	ball := w.CreateBody(BallDef(game.DefaultConfig().Ball, mgl64.Vec3{0, 0.5, 0}))

	var speeds []float64
	ball.SubscribeVelocity(func(v mgl64.Vec3) { speeds = append(speeds, v.Len()) })

	stepN(w, 120)
	require.Len(t, speeds, 120)
	for _, s := range speeds {
		assert.Less(t, s, 0.1)
	}
	assert.InDelta(t, 0.5, ball.Position().Y(), 0.01)
}

func TestDroppedBallSettles(t *testing.T) {
	w := NewWorld()
	w.CreateBody(groundDef())
	ball := w.CreateBody(BallDef(game.DefaultConfig().Ball, mgl64.Vec3{0, 3, 0}))

	stepN(w, 600)
	assert.InDelta(t, 0.5, ball.Position().Y(), 0.02)
	assert.Less(t, ball.Velocity().Len(), 0.1)
}

func TestRollingBallStopsUnderFriction(t *testing.T) {
	w := NewWorld()
	w.CreateBody(groundDef())
	ball := w.CreateBody(BallDef(game.DefaultConfig().Ball, mgl64.Vec3{0, 0.5, 0}))
	ball.SetVelocity(mgl64.Vec3{4, 0, 0})

	stepN(w, 30)
	assert.Greater(t, ball.Velocity().X(), 0.5)

	stepN(w, 900)
	assert.Less(t, ball.Velocity().Len(), 0.1)
	assert.Greater(t, ball.Position().X(), 1.0)
}

func TestFlagContactCallbacks(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl64.Vec3{})
	flag := w.CreateBody(BodyDef{
		Role:     shared.RoleFlagpole,
		Shape:    Box(mgl64.Vec3{0.1, 5, 0.1}),
		Position: mgl64.Vec3{0, 2.5, 0},
		Material: Material{Friction: 0.3, Restitution: 0.8},
	})
	def := BallDef(game.DefaultConfig().Ball, mgl64.Vec3{-2, 0.5, 0})
	def.LinearDamping = 0
	ball := w.CreateBody(def)
	ball.SetVelocity(mgl64.Vec3{5, 0, 0})

	var fromBall, fromFlag []shared.Contact
	ball.OnCollide(func(c shared.Contact) { fromBall = append(fromBall, c) })
	flag.OnCollide(func(c shared.Contact) { fromFlag = append(fromFlag, c) })

	for i := 0; i < 60 && len(fromBall) == 0; i++ {
		w.Step(dt)
	}
	require.Len(t, fromBall, 1)
	require.Len(t, fromFlag, 1)

	c := fromBall[0]
	assert.Equal(t, "flagpole-1|ball-1", c.PairKey)
	assert.Equal(t, fromFlag[0].PairKey, c.PairKey)
	assert.Equal(t, fromFlag[0].Step, c.Step)
	assert.Equal(t, shared.RoleBall, c.Self)
	assert.Equal(t, shared.RoleFlagpole, c.Other)
	assert.Equal(t, "flagpole-1", c.OtherID)
	assert.Equal(t, shared.RoleFlagpole, fromFlag[0].Self)

	// reported velocities are from before the bounce
	assert.InDelta(t, 5.0, c.SelfVelocity.X(), 1e-9)
	assert.InDelta(t, 5.0, fromFlag[0].OtherVelocity.X(), 1e-9)
	assert.InDelta(t, 1.0, c.Normal.X(), 1e-9)
	assert.InDelta(t, -1.0, fromFlag[0].Normal.X(), 1e-9)

	assert.InDelta(t, -1.6, ball.Velocity().X(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 2.5, 0}, flag.Position())
}

func TestVehiclePushesBall(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl64.Vec3{})
	cfg := game.DefaultConfig()
	cfg.Vehicle.LinearDamping = 0
	vehicle := w.SpawnVehicle(cfg.Vehicle, mgl64.Vec3{0, 0.5, 3}, math.Pi)
	ball := w.SpawnBall(cfg.Ball, mgl64.Vec3{0, 0.5, 0})

	assert.Equal(t, "vehicle-1", vehicle.ID())
	assert.Equal(t, "ball-1", ball.ID())

	var contacts []shared.Contact
	ball.OnCollide(func(c shared.Contact) { contacts = append(contacts, c) })

	vehicle.SetVelocity(mgl64.Vec3{0, 0, -6})
	for i := 0; i < 60 && len(contacts) == 0; i++ {
		w.Step(dt)
	}
	require.NotEmpty(t, contacts)
	assert.Equal(t, shared.RoleVehicle, contacts[0].Other)
	assert.Equal(t, "vehicle-1|ball-1", contacts[0].PairKey)
	assert.Less(t, ball.(*Body).Velocity().Z(), -6.0)
}

func TestSlowVehicleGrazeIsNotAHit(t *testing.T) {
	w := NewWorld()
	cfg := game.DefaultConfig()
	vehicle := w.SpawnVehicle(cfg.Vehicle, mgl64.Vec3{0, 0.5, 1.995}, 0)
	w.SpawnBall(cfg.Ball, mgl64.Vec3{0, 0.5, 0})

	var contacts []shared.Contact
	vehicle.OnCollide(func(c shared.Contact) { contacts = append(contacts, c) })

	vehicle.SetVelocity(mgl64.Vec3{0, 0, -0.48})
	w.Step(dt)
	require.Len(t, contacts, 1)
	assert.Greater(t, contacts[0].SelfVelocity.Len(), cfg.Router.MinHitSpeed)

	router := game.NewRouter(cfg.Router, func() game.Status { return game.StatusReady })
	assert.Empty(t, router.HandleContact(contacts[0]))
}

func TestStaticBodiesIgnoreForces(t *testing.T) {
	w := NewWorld()
	ground := w.CreateBody(groundDef())
	require.True(t, ground.IsStatic())

	ground.SetVelocity(mgl64.Vec3{1, 0, 0})
	ground.ApplyImpulse(mgl64.Vec3{0, 100, 0}, mgl64.Vec3{})
	stepN(w, 10)

	assert.Equal(t, mgl64.Vec3{}, ground.Velocity())
	assert.Equal(t, mgl64.Vec3{0, -0.25, 0}, ground.Position())
}

func TestImpulseSpin(t *testing.T) {
	w := NewWorld()
	cfg := game.DefaultConfig()
	ball := w.CreateBody(BallDef(cfg.Ball, mgl64.Vec3{}))
	vehicle := w.CreateBody(VehicleDef(cfg.Vehicle, mgl64.Vec3{5, 0, 0}, 0))

	ball.ApplyImpulse(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0.5, 0, 0})
	assert.InDelta(t, 1.0, ball.Velocity().Z(), 1e-9)
	assert.Less(t, ball.AngularVelocity().Y(), 0.0)

	vehicle.ApplyImpulse(mgl64.Vec3{0, 0, 1500}, mgl64.Vec3{6, 0, 0})
	assert.InDelta(t, 1.0, vehicle.Velocity().Z(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, vehicle.AngularVelocity())
}

func TestVehicleSleepsAndWakes(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl64.Vec3{})
	v := w.CreateBody(VehicleDef(game.DefaultConfig().Vehicle, mgl64.Vec3{}, 0))

	stepN(w, 70)
	assert.True(t, v.Sleeping())

	v.SetVelocity(mgl64.Vec3{1, 0, 0})
	assert.False(t, v.Sleeping())
	w.Step(dt)
	assert.Greater(t, v.Position().X(), 0.0)
}

func TestSubscriptionsStopAfterUnsubscribe(t *testing.T) {
	w := NewWorld()
	ball := w.CreateBody(BallDef(game.DefaultConfig().Ball, mgl64.Vec3{0, 10, 0}))

	var positions, rotations int
	stop := ball.SubscribePosition(func(mgl64.Vec3) { positions++ })
	ball.SubscribeRotation(func(mgl64.Quat) { rotations++ })

	stepN(w, 3)
	stop()
	stepN(w, 3)

	assert.Equal(t, 3, positions)
	assert.Equal(t, 6, rotations)
	assert.Equal(t, uint64(6), w.StepCount())
}

func TestCourseWorld(t *testing.T) {
	course := game.DefaultCourse()
	w := NewCourseWorld(course)

	bodies := w.Bodies()
	require.Len(t, bodies, len(course.Pieces))
	ids := make(map[string]bool)
	for _, b := range bodies {
		assert.True(t, b.IsStatic())
		ids[b.ID()] = true
	}
	assert.True(t, ids["flagpole-1"])
	assert.True(t, ids["fairway-1"])
	assert.True(t, ids["rough-1"])
	assert.True(t, ids["barrier-4"])

	// a ball teed up on the course stays put
	ball := w.SpawnBall(game.DefaultConfig().Ball, course.Tee.Vec())
	stepN(w, 120)
	assert.InDelta(t, course.Tee.Y, ball.(*Body).Position().Y(), 0.01)
}
