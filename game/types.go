package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Position represents a 3D position
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PositionFromVec converts an engine vector to its wire form
func PositionFromVec(v mgl64.Vec3) Position {
	return Position{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Vec converts back to an engine vector
func (p Position) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Status is the session state
type Status string

const (
	StatusReady       Status = "ready"
	StatusSwinging    Status = "swinging"
	StatusMoving      Status = "moving"
	StatusCelebration Status = "celebration"
)

// VehicleState is the published view of the vehicle
type VehicleState struct {
	Position        Position `json:"position"`
	DisplayPosition Position `json:"displayPosition"`
	Yaw             float64  `json:"yaw"`
	DisplayYaw      float64  `json:"displayYaw"`
	Speed           float64  `json:"speed"`
	Throttle        float64  `json:"throttle"`
	IsMoving        bool     `json:"isMoving"`
	IsStuck         bool     `json:"isStuck"`
}

// BallState is the published view of the ball
type BallState struct {
	Position Position `json:"position"`
	Velocity Position `json:"velocity"`
	Speed    float64  `json:"speed"`
	IsMoving bool     `json:"isMoving"`
	Lie      string   `json:"lie,omitempty"`
}

// CameraState is the published camera pose
type CameraState struct {
	Position    Position `json:"position"`
	LookAt      Position `json:"lookAt"`
	SmoothedYaw float64  `json:"smoothedYaw"`
	Zoom        float64  `json:"zoom"`
	PanX        float64  `json:"panX"`
	PanY        float64  `json:"panY"`
}

// SessionState is the published round state
type SessionState struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     Status  `json:"status"`
	HitCount   int     `json:"hitCount"`
	ScoreLabel string  `json:"scoreLabel"`
	Power      int     `json:"power"`
	Angle      float64 `json:"angle"`
}

// Snapshot is everything a renderer or HUD needs for one tick
type Snapshot struct {
	Tick    uint64       `json:"tick"`
	Time    float64      `json:"time"`
	Session SessionState `json:"session"`
	Vehicle VehicleState `json:"vehicle"`
	Ball    BallState    `json:"ball"`
	Camera  CameraState  `json:"camera"`
	Events  []GameEvent  `json:"events"`
}

// EventType represents the type of game event
type EventType string

// Event types
const (
	EventStatusChanged EventType = "STATUS_CHANGED"
	EventBallHit       EventType = "BALL_HIT"
	EventBallSwung     EventType = "BALL_SWUNG"
	EventHoled         EventType = "HOLED"
	EventRicochet      EventType = "RICOCHET"
	EventBallReset     EventType = "BALL_RESET"
	EventVehicleReset  EventType = "VEHICLE_RESET"
)

// GameEvent represents a consolidated game event
type GameEvent struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Tick      uint64      `json:"tick"`
	Timestamp int64       `json:"timestamp"`
}

// TransitionData describes a status change
type TransitionData struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

// ShotData describes a launch
type ShotData struct {
	Power    int     `json:"power"`
	Angle    float64 `json:"angle"`
	HitCount int     `json:"hitCount,omitempty"`
}

// ImpactData describes a ball-flag contact
type ImpactData struct {
	Speed float64 `json:"speed"`
}

// TimeStamper is a utility function type for getting current time
type TimeStamper func() int64

// DefaultTimeStamper returns the current time in milliseconds
func DefaultTimeStamper() int64 {
	return time.Now().UnixMilli()
}
