package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(status *Status) *Router {
	return NewRouter(DefaultConfig().Router, func() Status { return *status })
}

func vehicleBallContact(step uint64, vehicleVelocity mgl64.Vec3) shared.Contact {
	return shared.Contact{
		PairKey:      "vehicle-1|ball-1",
		Step:         step,
		Self:         shared.RoleVehicle,
		SelfID:       "vehicle-1",
		Other:        shared.RoleBall,
		OtherID:      "ball-1",
		SelfVelocity: vehicleVelocity,
	}
}

func ballFlagContact(step uint64, ballVelocity mgl64.Vec3) shared.Contact {
	return shared.Contact{
		PairKey:      "flagpole-1|ball-1",
		Step:         step,
		Self:         shared.RoleBall,
		SelfID:       "ball-1",
		Other:        shared.RoleFlagpole,
		OtherID:      "flagpole-1",
		SelfVelocity: ballVelocity,
	}
}

func TestRouterHitCooldown(t *testing.T) {
	status := StatusReady
	r := newTestRouter(&status)
	fast := mgl64.Vec3{0, 0, -5}

	r.Advance(0)
	events := r.HandleContact(vehicleBallContact(1, fast))
	require.Len(t, events, 1)
	assert.Equal(t, RouterHit, events[0].Kind)
	assert.InDelta(t, 5.0, events[0].ImpactSpeed, 1e-9)
	assert.Equal(t, fast, events[0].VehicleVelocity)

	r.Advance(1.5)
	assert.Empty(t, r.HandleContact(vehicleBallContact(90, fast)))

	r.Advance(2.5)
	assert.Len(t, r.HandleContact(vehicleBallContact(150, fast)), 1)
}

func TestRouterIgnoresSlowAndOutOfTurnHits(t *testing.T) {
	status := StatusReady
	r := newTestRouter(&status)

	assert.Empty(t, r.HandleContact(vehicleBallContact(1, mgl64.Vec3{0.3, 0, 0.3})))

	status = StatusMoving
	assert.Empty(t, r.HandleContact(vehicleBallContact(2, mgl64.Vec3{0, 0, 9})))

	status = StatusReady
	assert.Len(t, r.HandleContact(vehicleBallContact(3, mgl64.Vec3{0, 0, 9})), 1)
}

func TestRouterHitUsesPlanarVehicleSpeed(t *testing.T) {
	status := StatusReady
	r := newTestRouter(&status)

	// one step of gravity on a grounded vehicle creeping at 0.48 m/s
	graze := mgl64.Vec3{0, -0.1637, 0.48}
	require.Greater(t, graze.Len(), DefaultConfig().Router.MinHitSpeed)
	assert.Empty(t, r.HandleContact(vehicleBallContact(1, graze)))

	events := r.HandleContact(vehicleBallContact(2, mgl64.Vec3{0, -0.1637, 0.6}))
	require.Len(t, events, 1)
	assert.InDelta(t, 0.6, events[0].ImpactSpeed, 1e-9)
}

func TestRouterBallFirstOrdering(t *testing.T) {
	status := StatusReady
	r := newTestRouter(&status)

	c := shared.Contact{
		PairKey:       "vehicle-1|ball-1",
		Step:          4,
		Self:          shared.RoleBall,
		Other:         shared.RoleVehicle,
		SelfVelocity:  mgl64.Vec3{0, 0, 20},
		OtherVelocity: mgl64.Vec3{3, 0, 0},
	}
	events := r.HandleContact(c)
	require.Len(t, events, 1)
	assert.Equal(t, mgl64.Vec3{3, 0, 0}, events[0].VehicleVelocity)
}

func TestRouterDedupesMirroredContacts(t *testing.T) {
	status := StatusMoving
	r := newTestRouter(&status)

	c := ballFlagContact(7, mgl64.Vec3{1, 0, 0})
	mirror := shared.Contact{
		PairKey:       c.PairKey,
		Step:          c.Step,
		Self:          shared.RoleFlagpole,
		Other:         shared.RoleBall,
		OtherVelocity: c.SelfVelocity,
	}

	assert.Len(t, r.HandleContact(c), 1)
	assert.Empty(t, r.HandleContact(mirror))

	// the next step is a new contact
	assert.Len(t, r.HandleContact(ballFlagContact(8, mgl64.Vec3{1, 0, 0})), 1)

	r.Forget()
	assert.Len(t, r.HandleContact(c), 1)
}

func TestRouterFlagClassification(t *testing.T) {
	status := StatusMoving
	r := newTestRouter(&status)

	events := r.HandleContact(ballFlagContact(1, mgl64.Vec3{0, 0, -8}))
	require.Len(t, events, 1)
	assert.Equal(t, RouterHoled, events[0].Kind)

	events = r.HandleContact(ballFlagContact(2, mgl64.Vec3{0, 0, -12}))
	require.Len(t, events, 1)
	assert.Equal(t, RouterRicochet, events[0].Kind)
	assert.InDelta(t, 12.0, events[0].ImpactSpeed, 1e-9)

	// exactly the win speed still counts
	events = r.HandleContact(ballFlagContact(3, mgl64.Vec3{10, 0, 0}))
	require.Len(t, events, 1)
	assert.Equal(t, RouterHoled, events[0].Kind)

	status = StatusReady
	assert.Empty(t, r.HandleContact(ballFlagContact(4, mgl64.Vec3{0, 0, -1})))
}

func TestRouterTerrainAndBarriers(t *testing.T) {
	status := StatusMoving
	r := newTestRouter(&status)

	events := r.HandleContact(shared.Contact{
		PairKey: "rough-1|ball-1", Step: 1,
		Self: shared.RoleBall, Other: shared.RoleRough,
	})
	require.Len(t, events, 1)
	assert.Equal(t, RouterLie, events[0].Kind)
	assert.Equal(t, shared.RoleRough, events[0].Lie)

	assert.Empty(t, r.HandleContact(shared.Contact{
		PairKey: "barrier-1|ball-1", Step: 1,
		Self: shared.RoleBall, Other: shared.RoleBarrier,
		SelfVelocity: mgl64.Vec3{4, 0, 0},
	}))

	assert.Empty(t, r.HandleContact(shared.Contact{
		PairKey: "fairway-1|vehicle-1", Step: 1,
		Self: shared.RoleVehicle, Other: shared.RoleFairway,
	}))
}
