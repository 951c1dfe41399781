package physics

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/game/shared"
)

// World is a small deterministic rigid-body simulation. Contacts are routed
// to body callbacks synchronously inside Step.
type World struct {
	gravity mgl64.Vec3
	bodies  []*Body
	step    uint64
	counts  map[shared.Role]int
}

// NewWorld creates an empty world with standard gravity
func NewWorld() *World {
	return &World{
		gravity: mgl64.Vec3{0, Gravity, 0},
		counts:  make(map[shared.Role]int),
	}
}

// NewCourseWorld creates a world with static bodies for every course piece
func NewCourseWorld(course game.Course) *World {
	w := NewWorld()
	for _, p := range course.Pieces {
		w.CreateBody(PieceDef(p))
	}
	log.Debug("Physics: Initialized course bodies", "count", len(course.Pieces))
	return w
}

// SetGravity replaces the gravity vector
func (w *World) SetGravity(g mgl64.Vec3) {
	w.gravity = g
}

// CreateBody adds a body and returns it
func (w *World) CreateBody(def BodyDef) *Body {
	w.counts[def.Role]++
	id := fmt.Sprintf("%s-%d", def.Role, w.counts[def.Role])
	b := newBody(id, len(w.bodies), def)
	w.bodies = append(w.bodies, b)
	log.Debug("Registered body", "id", id, "static", b.IsStatic())
	return b
}

// SpawnVehicle creates the vehicle body
func (w *World) SpawnVehicle(cfg game.VehicleConfig, at mgl64.Vec3, yaw float64) shared.Body {
	b := w.CreateBody(VehicleDef(cfg, at, yaw))
	log.Info("Registered vehicle", "id", b.ID())
	return b
}

// SpawnBall creates the ball body
func (w *World) SpawnBall(cfg game.BallConfig, at mgl64.Vec3) shared.Body {
	b := w.CreateBody(BallDef(cfg, at))
	log.Info("Registered ball", "id", b.ID())
	return b
}

// Bodies returns every body in creation order
func (w *World) Bodies() []*Body {
	return w.bodies
}

// StepCount is the number of steps taken
func (w *World) StepCount() uint64 {
	return w.step
}

// Step advances the world by dt seconds: forces, contacts, damping,
// integration, sleep, then the position/velocity/rotation streams.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.step++

	for _, b := range w.bodies {
		if b.IsStatic() || b.sleeping {
			continue
		}
		b.velocity = b.velocity.Add(w.gravity.Mul(dt))
	}

	contacts := w.solveContacts()

	for _, b := range w.bodies {
		if b.IsStatic() || b.sleeping {
			continue
		}
		b.velocity = b.velocity.Mul(math.Pow(1-b.linearDamping, dt))
		b.position = b.position.Add(b.velocity.Mul(dt))
		if !b.fixedRotation {
			b.angularVelocity = b.angularVelocity.Mul(math.Pow(1-b.angularDamping, dt))
			b.rotation = integrateRotation(b.rotation, b.angularVelocity, dt)
		}
	}

	for _, c := range contacts {
		c.a.collideSubs.emit(c.forA)
		c.b.collideSubs.emit(c.forB)
	}

	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		b.updateSleep(dt)
		b.publish()
	}
}

type contactPair struct {
	a, b       *Body
	forA, forB shared.Contact
}

func (w *World) solveContacts() []contactPair {
	var out []contactPair
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if (a.IsStatic() || a.sleeping) && (b.IsStatic() || b.sleeping) {
				continue
			}
			if !CheckCollision(a, b) {
				continue
			}
			m, ok := collide(a, b)
			if !ok {
				continue
			}

			key := a.id + "|" + b.id
			pair := contactPair{
				a: a,
				b: b,
				forA: shared.Contact{
					PairKey: key, Step: w.step,
					Self: a.role, SelfID: a.id, Other: b.role, OtherID: b.id,
					SelfVelocity: a.velocity, OtherVelocity: b.velocity,
					Normal: m.normal,
				},
				forB: shared.Contact{
					PairKey: key, Step: w.step,
					Self: b.role, SelfID: b.id, Other: a.role, OtherID: a.id,
					SelfVelocity: b.velocity, OtherVelocity: a.velocity,
					Normal: m.normal.Mul(-1),
				},
			}
			resolve(m)
			if !a.IsStatic() {
				a.wakeOnContact()
			}
			if !b.IsStatic() {
				b.wakeOnContact()
			}
			out = append(out, pair)
		}
	}
	return out
}

// wakeOnContact wakes a sleeping body that something moving ran into
func (b *Body) wakeOnContact() {
	if b.sleeping && b.velocity.Len() > b.sleepSpeedLimit {
		b.wake()
	}
}

func integrateRotation(q mgl64.Quat, w mgl64.Vec3, dt float64) mgl64.Quat {
	if w == (mgl64.Vec3{}) {
		return q
	}
	spin := mgl64.Quat{W: 0, V: w}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}
