package game

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// RouterEventKind is the domain meaning of a contact
type RouterEventKind string

const (
	RouterHit      RouterEventKind = "hit"
	RouterHoled    RouterEventKind = "holed"
	RouterRicochet RouterEventKind = "ricochet"
	RouterLie      RouterEventKind = "lie"
)

// RouterEvent is emitted by the router for a classified contact
type RouterEvent struct {
	Kind            RouterEventKind
	ImpactSpeed     float64
	VehicleVelocity mgl64.Vec3
	Lie             shared.Role
}

// StatusFunc reports the current session status
type StatusFunc func() Status

// Router classifies raw contacts into hits, holes and ricochets
type Router struct {
	cfg    RouterConfig
	status StatusFunc

	now     float64
	lastHit float64
	hasHit  bool
	seen    map[string]uint64
}

// NewRouter creates a router gated by the given status source
func NewRouter(cfg RouterConfig, status StatusFunc) *Router {
	return &Router{
		cfg:    cfg,
		status: status,
		seen:   make(map[string]uint64),
	}
}

// Advance moves the router's clock forward to now (seconds of sim time)
func (r *Router) Advance(now float64) {
	r.now = now
}

// HandleContact classifies one contact. At most one event comes back.
func (r *Router) HandleContact(c shared.Contact) []RouterEvent {
	if step, ok := r.seen[c.PairKey]; ok && step == c.Step {
		return nil
	}
	r.seen[c.PairKey] = c.Step

	switch {
	case c.Self == shared.RoleVehicle && c.Other == shared.RoleBall:
		return r.vehicleBall(c.SelfVelocity)
	case c.Self == shared.RoleBall && c.Other == shared.RoleVehicle:
		return r.vehicleBall(c.OtherVelocity)
	case c.Self == shared.RoleBall && c.Other == shared.RoleFlagpole:
		return r.ballFlag(c.SelfVelocity)
	case c.Self == shared.RoleFlagpole && c.Other == shared.RoleBall:
		return r.ballFlag(c.OtherVelocity)
	case c.Self == shared.RoleBall && c.Other.IsTerrain():
		return []RouterEvent{{Kind: RouterLie, Lie: c.Other}}
	case c.Self == shared.RoleBall && c.Other == shared.RoleBarrier:
		log.Debug("Ball hit barrier", "speed", c.SelfVelocity.Len())
	}
	return nil
}

func (r *Router) vehicleBall(vehicleVelocity mgl64.Vec3) []RouterEvent {
	// the vehicle is pinned to the ground, vertical velocity is solver noise
	speed := planarSpeed(vehicleVelocity)
	if speed <= r.cfg.MinHitSpeed {
		return nil
	}
	if r.status() != StatusReady {
		return nil
	}
	if r.hasHit && r.now-r.lastHit < r.cfg.HitCooldown {
		log.Debug("Hit ignored, cooldown in effect", "sinceLast", r.now-r.lastHit)
		return nil
	}
	r.hasHit = true
	r.lastHit = r.now
	log.Info("Vehicle hit ball", "speed", speed)
	return []RouterEvent{{Kind: RouterHit, ImpactSpeed: speed, VehicleVelocity: vehicleVelocity}}
}

func (r *Router) ballFlag(ballVelocity mgl64.Vec3) []RouterEvent {
	if r.status() != StatusMoving {
		return nil
	}
	speed := ballVelocity.Len()
	if speed <= r.cfg.WinSpeed {
		log.Info("Ball holed against flag", "speed", speed)
		return []RouterEvent{{Kind: RouterHoled, ImpactSpeed: speed}}
	}
	log.Debug("Ball ricocheted off flag", "speed", speed)
	return []RouterEvent{{Kind: RouterRicochet, ImpactSpeed: speed}}
}

// Forget clears per-step pair bookkeeping
func (r *Router) Forget() {
	for k := range r.seen {
		delete(r.seen, k)
	}
}
