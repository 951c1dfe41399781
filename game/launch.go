package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShotIntent is a single swing request. Power is a percentage, angle is in
// degrees with 0 pointing down the course (-Z) and positive angles to the right.
type ShotIntent struct {
	Power        int     `json:"power"`
	AngleDegrees float64 `json:"angle"`
}

// Clamped returns the intent with power and angle pulled into range
func (s ShotIntent) Clamped() ShotIntent {
	return ShotIntent{
		Power:        clampInt(s.Power, 0, 100),
		AngleDegrees: mgl64.Clamp(s.AngleDegrees, -180, 180),
	}
}

// Launch is the result of the launch model
type Launch struct {
	Impulse         mgl64.Vec3
	Spin            mgl64.Vec3
	InitialVelocity mgl64.Vec3
}

// IsZero reports whether the launch moves nothing
func (l Launch) IsZero() bool {
	return l.Impulse == (mgl64.Vec3{}) && l.InitialVelocity == (mgl64.Vec3{})
}

// LaunchModel turns a shot into an impulse
type LaunchModel struct {
	cfg LaunchConfig
}

// NewLaunchModel creates a launch model
func NewLaunchModel(cfg LaunchConfig) LaunchModel {
	return LaunchModel{cfg: cfg}
}

// Launch computes the impulse, spin and reinforcement velocity for a shot
func (m LaunchModel) Launch(shot ShotIntent) Launch {
	shot = shot.Clamped()
	if shot.Power == 0 {
		return Launch{}
	}

	dir := shotDirection(shot.AngleDegrees)
	power := float64(shot.Power)
	magnitude := power * m.cfg.PowerScale
	vertical := math.Min(power/100, 1) * m.cfg.VerticalRatio * magnitude

	return Launch{
		Impulse: mgl64.Vec3{dir.X() * magnitude, vertical, dir.Z() * magnitude},
		Spin:    mgl64.Vec3{-dir.Z() * m.cfg.SpinScale, 0, dir.X() * m.cfg.SpinScale},
		InitialVelocity: mgl64.Vec3{
			dir.X() * magnitude * m.cfg.VelocityScale,
			vertical * m.cfg.VerticalVelocityScale,
			dir.Z() * magnitude * m.cfg.VelocityScale,
		},
	}
}

// ShotFromImpact derives a shot from the vehicle velocity at the moment it hit
// the ball. Only the horizontal component counts.
func (m LaunchModel) ShotFromImpact(velocity mgl64.Vec3) ShotIntent {
	speed := planarSpeed(velocity)
	power := int(math.Min(math.Floor(speed*m.cfg.SpeedToPower), 100))

	angle := 0.0
	if velocity.X() != 0 || velocity.Z() != 0 {
		angle = mgl64.RadToDeg(math.Atan2(velocity.X(), -velocity.Z()))
	}
	return ShotIntent{Power: power, AngleDegrees: angle}.Clamped()
}

// shotDirection is the unit horizontal direction for an angle in degrees
func shotDirection(angleDeg float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(angleDeg)
	dir := mgl64.Vec3{math.Sin(rad), 0, -math.Cos(rad)}
	if l := dir.Len(); l > 1e-9 {
		return dir.Mul(1 / l)
	}
	return mgl64.Vec3{0, 0, -1}
}

func planarSpeed(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
