package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraSnapsOnFirstTick(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	pose := c.Tick(testDT, CameraTarget{Position: mgl64.Vec3{0, 0.5, 0}, Yaw: 1.2})

	assert.Equal(t, 1.2, pose.SmoothedYaw)
	assert.Equal(t, 2.0, pose.Zoom)

	// behind the target and above it
	behind := forwardFromYaw(1.2).Mul(-1)
	offset := pose.Position.Sub(mgl64.Vec3{0, 0.5, 0})
	assert.Greater(t, offset.Y(), 0.0)
	assert.Greater(t, mgl64.Vec3{offset.X(), 0, offset.Z()}.Normalize().Dot(behind), 0.999)
}

func TestCameraConvergesOnHeading(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	target := CameraTarget{Yaw: 0}
	c.Snap(target)

	target.Yaw = math.Pi / 2
	prev := c.Pose().SmoothedYaw
	for i := 0; i < 1200; i++ {
		pose := c.Tick(testDT, target)
		require.LessOrEqual(t, pose.SmoothedYaw-prev, 0.02+1e-12)
		require.GreaterOrEqual(t, pose.SmoothedYaw, prev)
		prev = pose.SmoothedYaw
	}
	assert.InDelta(t, math.Pi/2, prev, 1e-3)
}

func TestCameraRotationCappedPerTick(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	c.Snap(CameraTarget{Yaw: 0})

	// a huge frame is capped and the per-tick limit still holds
	pose := c.Tick(5, CameraTarget{Yaw: 3})
	assert.InDelta(t, 0.02, pose.SmoothedYaw, 1e-12)

	pose = c.Tick(0.1, CameraTarget{Yaw: -3})
	assert.Less(t, math.Abs(pose.SmoothedYaw-0.02), 0.02+1e-12)
}

func TestCameraTakesShortWayRound(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	c.Snap(CameraTarget{Yaw: 3})

	for i := 0; i < 60; i++ {
		c.Tick(testDT, CameraTarget{Yaw: -3})
	}
	assert.Greater(t, c.Pose().SmoothedYaw, 3.0)
}

func TestCameraFollowsPosition(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	c.Snap(CameraTarget{})
	start := c.Pose().Position

	target := CameraTarget{Position: mgl64.Vec3{0, 0, 20}}
	c.Tick(testDT, target)
	moved := c.Pose().Position.Z() - start.Z()
	assert.Greater(t, moved, 0.0)
	assert.Less(t, moved, 20.0)

	for i := 0; i < 600; i++ {
		c.Tick(testDT, target)
	}
	assert.InDelta(t, start.Z()+20, c.Pose().Position.Z(), 1e-3)
	assert.InDelta(t, 20+10*math.Sqrt(2), c.Pose().LookAt.Z(), 1e-9)
}

func TestCameraZoomClamp(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)

	c.Zoom(1)
	assert.InDelta(t, 2.2, c.Pose().Zoom, 1e-9)

	for i := 0; i < 20; i++ {
		c.Zoom(1)
	}
	assert.Equal(t, 3.0, c.Pose().Zoom)

	for i := 0; i < 50; i++ {
		c.Zoom(-1)
	}
	assert.Equal(t, 0.5, c.Pose().Zoom)

	c.Zoom(0)
	assert.Equal(t, 0.5, c.Pose().Zoom)
}

func TestCameraPanAndReset(t *testing.T) {
	c := NewCamera(DefaultConfig().Camera)
	c.Snap(CameraTarget{})
	before := c.Pose().Position

	c.Pan(10, 10)
	assert.InDelta(t, 0.8, c.Pose().Pan.X(), 1e-9)
	assert.InDelta(t, -0.8, c.Pose().Pan.Y(), 1e-9)

	c.Snap(CameraTarget{})
	assert.InDelta(t, before.X()+0.8, c.Pose().Position.X(), 1e-9)
	assert.InDelta(t, before.Z()-0.8, c.Pose().Position.Z(), 1e-9)

	c.Zoom(1)
	c.Reset()
	assert.Equal(t, mgl64.Vec2{}, c.Pose().Pan)
	assert.Equal(t, 1.0, c.Pose().Zoom)
}
