package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraTarget is what the camera follows each tick
type CameraTarget struct {
	Position mgl64.Vec3
	Yaw      float64
}

// CameraPose is the camera output for one tick
type CameraPose struct {
	Position    mgl64.Vec3
	LookAt      mgl64.Vec3
	SmoothedYaw float64
	Zoom        float64
	Pan         mgl64.Vec2
}

// Camera is a chase camera whose yaw lags the vehicle heading.
// Sharp turns lag more than gentle drift, and a single tick never rotates
// further than MaxRotationPerTick.
type Camera struct {
	cfg CameraConfig

	initialized bool
	smoothedYaw float64
	position    mgl64.Vec3
	lookAt      mgl64.Vec3
	zoom        float64
	pan         mgl64.Vec2
}

// NewCamera creates a camera at the configured initial zoom
func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{
		cfg:  cfg,
		zoom: mgl64.Clamp(cfg.InitialZoom, cfg.MinZoom, cfg.MaxZoom),
	}
}

// Tick moves the camera toward the target
func (c *Camera) Tick(dt float64, target CameraTarget) CameraPose {
	if dt > c.cfg.MaxFrameDelta {
		dt = c.cfg.MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}

	if !c.initialized {
		c.Snap(target)
		return c.Pose()
	}

	delta := AngleDelta(c.smoothedYaw, target.Yaw)
	step := delta * math.Min(c.rotationRate(math.Abs(delta))*dt*c.cfg.RotationSmoothness, 1)
	step = mgl64.Clamp(step, -c.cfg.MaxRotationPerTick, c.cfg.MaxRotationPerTick)
	c.smoothedYaw += step

	desired := c.desiredPosition(target)
	c.position = lerpVec(c.position, desired, math.Min(c.cfg.PositionSmoothness*dt, 1))
	c.lookAt = c.lookAtPoint(target)
	return c.Pose()
}

// Snap puts the camera directly on its target with no smoothing
func (c *Camera) Snap(target CameraTarget) {
	c.smoothedYaw = target.Yaw
	c.position = c.desiredPosition(target)
	c.lookAt = c.lookAtPoint(target)
	c.initialized = true
}

// rotationRate maps the size of the yaw gap to a catch-up rate.
// Bigger gaps get slower rates.
func (c *Camera) rotationRate(gap float64) float64 {
	lo, hi := c.cfg.MinRotationRate, c.cfg.MaxRotationRate
	switch {
	case gap > 0.15:
		return lo * 0.3
	case gap > 0.1:
		return lo * 0.5
	case gap > 0.05:
		return lo * 0.8
	case gap > 0.02:
		return lerp(lo, hi, 0.3)
	case gap > 0.01:
		return lerp(lo, hi, 0.6)
	default:
		return hi
	}
}

func (c *Camera) desiredPosition(target CameraTarget) mgl64.Vec3 {
	backward := forwardFromYaw(c.smoothedYaw).Mul(-c.cfg.DistanceBehind * c.zoom)
	up := mgl64.Vec3{0, c.cfg.Height * math.Sqrt(c.zoom), 0}
	return target.Position.Add(backward).Add(up).Add(c.panOffset())
}

func (c *Camera) lookAtPoint(target CameraTarget) mgl64.Vec3 {
	ahead := forwardFromYaw(target.Yaw).Mul(c.cfg.LookAhead * math.Sqrt(c.zoom))
	return target.Position.Add(ahead).Add(c.panOffset())
}

// panOffset rotates the accumulated pan into the camera's current frame
func (c *Camera) panOffset() mgl64.Vec3 {
	if c.pan == (mgl64.Vec2{}) {
		return mgl64.Vec3{}
	}
	rot := mgl64.Rotate3DY(c.smoothedYaw)
	right := rot.Mul3x1(mgl64.Vec3{1, 0, 0})
	forward := rot.Mul3x1(mgl64.Vec3{0, 0, 1})
	return right.Mul(c.pan.X()).Add(forward.Mul(c.pan.Y()))
}

// Zoom steps the zoom level out for positive deltas and in for negative ones
func (c *Camera) Zoom(delta float64) {
	switch {
	case delta > 0:
		c.zoom *= c.cfg.ZoomOutFactor
	case delta < 0:
		c.zoom *= c.cfg.ZoomInFactor
	}
	c.zoom = mgl64.Clamp(c.zoom, c.cfg.MinZoom, c.cfg.MaxZoom)
}

// Pan accumulates a pointer drag in pixels. Screen Y is inverted.
func (c *Camera) Pan(dx, dy float64) {
	c.pan = c.pan.Add(mgl64.Vec2{dx * c.cfg.PanFactor, -dy * c.cfg.PanFactor})
}

// Reset clears panning and returns to the neutral zoom
func (c *Camera) Reset() {
	c.pan = mgl64.Vec2{}
	c.zoom = mgl64.Clamp(c.cfg.ResetZoom, c.cfg.MinZoom, c.cfg.MaxZoom)
}

// Pose returns the current pose
func (c *Camera) Pose() CameraPose {
	return CameraPose{
		Position:    c.position,
		LookAt:      c.lookAt,
		SmoothedYaw: c.smoothedYaw,
		Zoom:        c.zoom,
		Pan:         c.pan,
	}
}

// State returns a snapshot for publishing
func (c *Camera) State() CameraState {
	return CameraState{
		Position:    PositionFromVec(c.position),
		LookAt:      PositionFromVec(c.lookAt),
		SmoothedYaw: c.smoothedYaw,
		Zoom:        c.zoom,
		PanX:        c.pan.X(),
		PanY:        c.pan.Y(),
	}
}
