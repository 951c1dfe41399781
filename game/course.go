package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mark3labs/drive-golf/game/shared"
)

// Piece is a static box on the course
type Piece struct {
	Role        shared.Role `json:"role"`
	Center      Position    `json:"center"`
	Size        Position    `json:"size"`
	Friction    float64     `json:"friction"`
	Restitution float64     `json:"restitution"`
}

// Course is the static layout the world builds colliders from
type Course struct {
	Pieces       []Piece  `json:"pieces"`
	Tee          Position `json:"tee"`
	VehicleStart Position `json:"vehicleStart"`
	VehicleYaw   float64  `json:"vehicleYaw"`
	Hole         Position `json:"hole"`
}

const (
	fairwayWidth = 50.0
	fairwayDepth = 150.0
	roughMargin  = 50.0
	wallMargin   = 20.0
	wallHeight   = 2.0
	wallThick    = 1.0
)

// DefaultCourse builds the single-hole course: a fairway inside a band of
// rough, walled in on four sides, with the flag near the far end
func DefaultCourse() Course {
	roughWidth := fairwayWidth + roughMargin
	roughDepth := fairwayDepth + roughMargin
	wallWidth := roughWidth + wallMargin
	wallDepth := roughDepth + wallMargin

	pieces := []Piece{
		{
			Role:        shared.RoleFlagpole,
			Center:      Position{X: 0, Y: 2.5, Z: -10},
			Size:        Position{X: 0.1, Y: 5, Z: 0.1},
			Friction:    0.3,
			Restitution: 0.8,
		},
		{
			Role:        shared.RoleFairway,
			Center:      Position{X: 0, Y: -0.25, Z: 0},
			Size:        Position{X: fairwayWidth, Y: 0.5, Z: fairwayDepth},
			Friction:    0.3,
			Restitution: 0.1,
		},
		{
			Role:        shared.RoleRough,
			Center:      Position{X: 0, Y: -0.3, Z: 0},
			Size:        Position{X: roughWidth, Y: 0.5, Z: roughDepth},
			Friction:    0.7,
			Restitution: 0.05,
		},
	}

	walls := []struct{ center, size Position }{
		{Position{Z: -wallDepth / 2}, Position{X: wallWidth, Y: wallHeight, Z: wallThick}},
		{Position{Z: wallDepth / 2}, Position{X: wallWidth, Y: wallHeight, Z: wallThick}},
		{Position{X: wallWidth / 2}, Position{X: wallThick, Y: wallHeight, Z: wallDepth}},
		{Position{X: -wallWidth / 2}, Position{X: wallThick, Y: wallHeight, Z: wallDepth}},
	}
	for _, w := range walls {
		pieces = append(pieces, Piece{
			Role:        shared.RoleBarrier,
			Center:      w.center,
			Size:        w.size,
			Friction:    0.3,
			Restitution: 0.3,
		})
	}

	return Course{
		Pieces:       pieces,
		Tee:          Position{X: 5, Y: 0.5, Z: 60},
		VehicleStart: Position{X: 5, Y: 0.5, Z: 80},
		VehicleYaw:   math.Pi,
		Hole:         Position{X: 0, Y: 0, Z: -10},
	}
}

// NearHole reports whether p lies within radius of the hole on the ground plane
func (c Course) NearHole(p mgl64.Vec3, radius float64) bool {
	return planarDistance(p, c.Hole.Vec()) <= radius
}
