package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Heading accumulates yaw without wrapping it into [-π, π]
type Heading struct {
	yaw float64
}

// NewHeading starts a heading at the given yaw
func NewHeading(yaw float64) Heading {
	return Heading{yaw: yaw}
}

// Turn adds delta radians
func (h *Heading) Turn(delta float64) {
	h.yaw += delta
}

// Set replaces the accumulated yaw
func (h *Heading) Set(yaw float64) {
	h.yaw = yaw
}

// Yaw returns the unwrapped angle
func (h Heading) Yaw() float64 {
	return h.yaw
}

// Forward is the unit vector the vehicle faces, (sin yaw, 0, cos yaw)
func (h Heading) Forward() mgl64.Vec3 {
	return forwardFromYaw(h.yaw)
}

// Right is the unit vector a quarter turn counter-clockwise of Forward
func (h Heading) Right() mgl64.Vec3 {
	return forwardFromYaw(h.yaw + math.Pi/2)
}

// Rotation projects the heading onto a quaternion about +Y for the engine
func (h Heading) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(h.yaw, mgl64.Vec3{0, 1, 0})
}

func forwardFromYaw(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

// AngleDelta returns the shortest signed rotation from one angle to another,
// in [-π, π). Inputs may be unwrapped.
func AngleDelta(from, to float64) float64 {
	d := math.Mod(to-from+3*math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}
