package game

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// Ball tracks the ball body and whether it is still rolling
type Ball struct {
	cfg    BallConfig
	launch LaunchModel
	body   shared.Body
	tee    mgl64.Vec3

	position mgl64.Vec3
	velocity mgl64.Vec3
	moving   bool
	lie      shared.Role

	unsubscribe []func()
}

// NewBall creates a ball resting on the tee
func NewBall(cfg BallConfig, launch LaunchModel, tee mgl64.Vec3) *Ball {
	return &Ball{
		cfg:      cfg,
		launch:   launch,
		tee:      tee,
		position: tee,
	}
}

// Attach binds the ball to its engine body
func (b *Ball) Attach(body shared.Body) {
	for _, fn := range b.unsubscribe {
		fn()
	}
	b.unsubscribe = nil
	b.body = body
	if body == nil {
		return
	}
	b.unsubscribe = append(b.unsubscribe,
		body.SubscribePosition(func(p mgl64.Vec3) { b.position = p }),
		body.SubscribeVelocity(b.sampleVelocity),
	)
}

// Body returns the attached engine body, or nil
func (b *Ball) Body() shared.Body {
	return b.body
}

func (b *Ball) sampleVelocity(v mgl64.Vec3) {
	b.velocity = v
	b.moving = v.Len() >= b.cfg.MovingThreshold
}

// Launch zeroes the ball's motion and fires the shot. It returns false when
// the shot carries no power or the body is not ready.
func (b *Ball) Launch(shot ShotIntent) bool {
	if b.body == nil {
		log.Warn("Ball launch before body is ready")
		return false
	}

	l := b.launch.Launch(shot)
	if l.IsZero() {
		return false
	}

	b.body.SetVelocity(mgl64.Vec3{})
	b.body.SetAngularVelocity(mgl64.Vec3{})
	b.body.ApplyImpulse(l.Impulse, b.position)

	initial := l.InitialVelocity
	if b.launch.cfg.AdditiveReinforcement {
		initial = initial.Add(l.Impulse.Mul(1 / b.cfg.Mass))
	}
	b.body.SetVelocity(initial)
	b.body.SetAngularVelocity(l.Spin)

	b.sampleVelocity(initial)

	shot = shot.Clamped()
	log.Info("Ball launched", "power", shot.Power, "angle", shot.AngleDegrees,
		"vx", initial.X(), "vy", initial.Y(), "vz", initial.Z())
	return true
}

// Reset puts the ball back on the tee at rest
func (b *Ball) Reset() {
	b.position = b.tee
	b.velocity = mgl64.Vec3{}
	b.moving = false
	b.lie = ""
	if b.body == nil {
		return
	}
	b.body.SetPosition(b.tee)
	b.body.SetVelocity(mgl64.Vec3{})
	b.body.SetAngularVelocity(mgl64.Vec3{})
	log.Info("Ball reset to tee", "x", b.tee.X(), "z", b.tee.Z())
}

// SetLie records the terrain zone the ball last touched
func (b *Ball) SetLie(r shared.Role) {
	b.lie = r
}

// IsMoving reports whether the last velocity sample was above the threshold
func (b *Ball) IsMoving() bool {
	return b.moving
}

// Position returns the last sampled position
func (b *Ball) Position() mgl64.Vec3 {
	return b.position
}

// Velocity returns the last sampled velocity
func (b *Ball) Velocity() mgl64.Vec3 {
	return b.velocity
}

// State returns a snapshot for publishing
func (b *Ball) State() BallState {
	return BallState{
		Position: PositionFromVec(b.position),
		Velocity: PositionFromVec(b.velocity),
		Speed:    b.velocity.Len(),
		IsMoving: b.moving,
		Lie:      string(b.lie),
	}
}
