package game

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// ThrottleInput is the held throttle key
type ThrottleInput int

const (
	ThrottleNone ThrottleInput = iota
	ThrottleForward
	ThrottleReverse
)

// SteerInput is the held steering key. Left turns yaw positive.
type SteerInput int

const (
	SteerRight SteerInput = -1
	SteerNone  SteerInput = 0
	SteerLeft  SteerInput = 1
)

// VehicleController drives the vehicle body kinematically. It owns the heading
// and throttle; the engine only mirrors position, rotation and velocity.
type VehicleController struct {
	cfg  VehicleConfig
	body shared.Body

	heading        Heading
	throttle       float64
	targetThrottle float64
	steering       SteerInput
	stuck          *StuckDetector
	clock          float64

	position mgl64.Vec3
	velocity mgl64.Vec3

	displayPosition mgl64.Vec3
	displayYaw      float64

	unsubscribe []func()
}

// NewVehicleController creates a controller for a vehicle starting at the given pose.
// Attach must be called before ticks have any effect.
func NewVehicleController(cfg VehicleConfig, start mgl64.Vec3, yaw float64) *VehicleController {
	return &VehicleController{
		cfg:             cfg,
		heading:         NewHeading(yaw),
		stuck:           NewStuckDetector(cfg.Stuck),
		position:        start,
		displayPosition: start,
		displayYaw:      yaw,
	}
}

// Attach binds the controller to its engine body and subscribes to its streams
func (v *VehicleController) Attach(body shared.Body) {
	v.Detach()
	v.body = body
	if body == nil {
		return
	}
	v.unsubscribe = append(v.unsubscribe,
		body.SubscribePosition(func(p mgl64.Vec3) { v.position = p }),
		body.SubscribeVelocity(func(vel mgl64.Vec3) { v.velocity = vel }),
	)
	body.SetRotation(v.heading.Rotation())
	log.Debug("Vehicle attached", "id", body.ID(), "yaw", v.heading.Yaw())
}

// Detach drops the body and its subscriptions
func (v *VehicleController) Detach() {
	for _, fn := range v.unsubscribe {
		fn()
	}
	v.unsubscribe = nil
	v.body = nil
}

// Body returns the attached engine body, or nil
func (v *VehicleController) Body() shared.Body {
	return v.body
}

// SetThrottle sets the held throttle target
func (v *VehicleController) SetThrottle(in ThrottleInput) {
	switch in {
	case ThrottleForward:
		v.targetThrottle = v.cfg.ForwardThrottle
	case ThrottleReverse:
		v.targetThrottle = v.cfg.ReverseThrottle
	default:
		v.targetThrottle = 0
	}
}

// SetSteering sets the held steering direction
func (v *VehicleController) SetSteering(in SteerInput) {
	switch {
	case in > 0:
		v.steering = SteerLeft
	case in < 0:
		v.steering = SteerRight
	default:
		v.steering = SteerNone
	}
}

// Tick advances the controller by dt seconds and writes the result to the body
func (v *VehicleController) Tick(dt float64) {
	if v.body == nil || dt <= 0 {
		return
	}
	v.clock += dt

	v.easeThrottle(dt)

	planar := mgl64.Vec3{v.velocity.X(), 0, v.velocity.Z()}
	speed := planar.Len()

	if v.steering != SteerNone {
		rate := v.cfg.TurnRate*v.cfg.BaseSteerFactor +
			math.Max(speed, v.cfg.MinSteerSpeed)*v.cfg.TurnRate*v.cfg.SpeedSteerFactor
		v.heading.Turn(float64(v.steering) * rate * dt)
	}

	forward := v.heading.Forward()
	accel := v.acceleration(planar.Dot(forward), dt)

	next := planar
	if math.Abs(accel) > v.cfg.AccelerationThreshold {
		next = next.Add(forward.Mul(accel))
	} else {
		next = next.Mul(v.cfg.CoastDamping)
	}
	next = deadzone(next, v.cfg.VelocityDeadzone)

	wasStuck := v.stuck.Stuck()
	if v.stuck.Update(v.clock, v.position, v.throttle) {
		if !wasStuck {
			log.Info("Vehicle appears stuck, nudging", "x", v.position.X(), "z", v.position.Z())
		}
		next = next.Add(v.unstickVelocity(forward))
	}

	v.body.SetVelocity(next)
	v.body.SetAngularVelocity(mgl64.Vec3{})
	v.body.SetPosition(mgl64.Vec3{v.position.X(), v.cfg.GroundHeight, v.position.Z()})
	v.body.SetRotation(v.heading.Rotation())

	v.velocity = next
	v.position[1] = v.cfg.GroundHeight
	v.smoothDisplay(dt)
}

func (v *VehicleController) easeThrottle(dt float64) {
	diff := v.targetThrottle - v.throttle
	if math.Abs(diff) <= v.cfg.ThrottleEpsilon {
		v.throttle = v.targetThrottle
		return
	}

	rate := v.cfg.ThrottleRate
	if math.Abs(v.targetThrottle) < math.Abs(v.throttle) {
		rate *= v.cfg.DecelerationMultiplier
	}

	step := rate * dt
	if step >= math.Abs(diff) {
		v.throttle = v.targetThrottle
		return
	}
	v.throttle += math.Copysign(step, diff)
	if math.Abs(v.targetThrottle-v.throttle) <= v.cfg.ThrottleEpsilon {
		v.throttle = v.targetThrottle
	}
}

// acceleration works on the signed speed along the current heading
func (v *VehicleController) acceleration(forwardSpeed, dt float64) float64 {
	if v.throttle == 0 {
		return -forwardSpeed * dt * v.cfg.BrakingConstant
	}

	target := v.throttle * v.cfg.MaxSpeed
	diff := target - forwardSpeed
	if diff == 0 {
		return 0
	}
	factor := math.Max(v.cfg.MinAccelerationFactor, 1-(math.Abs(forwardSpeed)/v.cfg.MaxSpeed)*v.cfg.TopSpeedDamping)
	return dt * v.cfg.AccelerationRate * factor * math.Copysign(math.Min(math.Abs(diff), v.cfg.MaxSpeedDeficit), diff)
}

func (v *VehicleController) unstickVelocity(forward mgl64.Vec3) mgl64.Vec3 {
	sc := v.cfg.Stuck
	nudge := v.heading.Right().Mul(math.Sin(v.clock*sc.OscillationRate) * sc.LateralAmplitude)
	if v.stuck.Displacement() < sc.CrawlDistance {
		nudge = nudge.Sub(forward.Mul(sc.ReverseSpeed))
	}
	return nudge
}

func (v *VehicleController) smoothDisplay(dt float64) {
	rate := v.cfg.IdleSmoothing
	if v.IsMoving() {
		rate = v.cfg.MovingSmoothing
	}
	t := math.Min(rate*dt, 1)
	v.displayPosition = lerpVec(v.displayPosition, v.position, t)
	v.displayYaw += AngleDelta(v.displayYaw, v.heading.Yaw()) * t
}

// Reset teleports the vehicle and clears all motion and stuck state
func (v *VehicleController) Reset(pos mgl64.Vec3, yaw float64) {
	pos[1] = v.cfg.GroundHeight
	v.heading.Set(yaw)
	v.throttle = 0
	v.targetThrottle = 0
	v.steering = SteerNone
	v.stuck.Reset()
	v.position = pos
	v.velocity = mgl64.Vec3{}
	v.displayPosition = pos
	v.displayYaw = yaw

	if v.body == nil {
		return
	}
	v.body.SetPosition(pos)
	v.body.SetVelocity(mgl64.Vec3{})
	v.body.SetAngularVelocity(mgl64.Vec3{})
	v.body.SetRotation(v.heading.Rotation())
	log.Info("Vehicle reset", "x", pos.X(), "z", pos.Z(), "yaw", yaw)
}

// Yaw returns the continuous heading
func (v *VehicleController) Yaw() float64 {
	return v.heading.Yaw()
}

// Position returns the last known body position
func (v *VehicleController) Position() mgl64.Vec3 {
	return v.position
}

// Velocity returns the last velocity written or sampled
func (v *VehicleController) Velocity() mgl64.Vec3 {
	return v.velocity
}

// Throttle returns the eased throttle
func (v *VehicleController) Throttle() float64 {
	return v.throttle
}

// IsStuck reports the stuck flag
func (v *VehicleController) IsStuck() bool {
	return v.stuck.Stuck()
}

// IsMoving reports whether planar speed is above the moving threshold
func (v *VehicleController) IsMoving() bool {
	return mgl64.Vec3{v.velocity.X(), 0, v.velocity.Z()}.Len() > v.cfg.MovingThreshold
}

// State returns a snapshot for publishing
func (v *VehicleController) State() VehicleState {
	return VehicleState{
		Position:        PositionFromVec(v.position),
		DisplayPosition: PositionFromVec(v.displayPosition),
		Yaw:             v.heading.Yaw(),
		DisplayYaw:      v.displayYaw,
		Speed:           mgl64.Vec3{v.velocity.X(), 0, v.velocity.Z()}.Len(),
		Throttle:        v.throttle,
		IsMoving:        v.IsMoving(),
		IsStuck:         v.stuck.Stuck(),
	}
}

func deadzone(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	for i := range v {
		if math.Abs(v[i]) < limit {
			v[i] = 0
		}
	}
	return v
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
