package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game"
	"github.com/mark3labs/drive-golf/game/shared"
)

// Gravity is the default downward acceleration
const Gravity = -9.82

// ShapeKind selects the collision primitive
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

// Shape is a collision primitive centered on the body
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
}

// Sphere creates a sphere shape
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Box creates a box shape from its full size
func Box(size mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: size.Mul(0.5)}
}

// Material is the surface response of a body. Pair values are the product
// of both materials.
type Material struct {
	Friction    float64
	Restitution float64
}

// BodyDef describes a body to create. Mass 0 makes it static.
type BodyDef struct {
	Role            shared.Role
	Mass            float64
	Shape           Shape
	Position        mgl64.Vec3
	Yaw             float64
	LinearDamping   float64
	AngularDamping  float64
	FixedRotation   bool
	AllowSleep      bool
	SleepSpeedLimit float64
	SleepTimeLimit  float64
	Material        Material
}

// VehicleDef is the body used for the player's vehicle
func VehicleDef(cfg game.VehicleConfig, at mgl64.Vec3, yaw float64) BodyDef {
	return BodyDef{
		Role:            shared.RoleVehicle,
		Mass:            cfg.Mass,
		Shape:           Box(mgl64.Vec3{1.5, 0.5, 3}),
		Position:        at,
		Yaw:             yaw,
		LinearDamping:   cfg.LinearDamping,
		AngularDamping:  cfg.AngularDamping,
		FixedRotation:   true,
		AllowSleep:      true,
		SleepSpeedLimit: 0.1,
		SleepTimeLimit:  1,
		Material:        Material{Friction: 0.3, Restitution: 0.1},
	}
}

// BallDef is the body used for the ball
func BallDef(cfg game.BallConfig, at mgl64.Vec3) BodyDef {
	return BodyDef{
		Role:           shared.RoleBall,
		Mass:           cfg.Mass,
		Shape:          Sphere(cfg.Radius),
		Position:       at,
		LinearDamping:  cfg.LinearDamping,
		AngularDamping: cfg.AngularDamping,
		Material:       Material{Friction: cfg.Friction, Restitution: cfg.Restitution},
	}
}

// PieceDef is the static body for a course piece
func PieceDef(p game.Piece) BodyDef {
	return BodyDef{
		Role:     p.Role,
		Shape:    Box(p.Size.Vec()),
		Position: p.Center.Vec(),
		Material: Material{Friction: p.Friction, Restitution: p.Restitution},
	}
}

var _ game.Engine = (*World)(nil)
