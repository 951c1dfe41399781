package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// manifold is a single contact between two bodies. Normal points from A to B.
type manifold struct {
	a, b   *Body
	normal mgl64.Vec3
	depth  float64
}

// boundingRadius is the radius of a sphere enclosing the body's shape
func boundingRadius(b *Body) float64 {
	if b.shape.Kind == ShapeSphere {
		return b.shape.Radius
	}
	return b.shape.HalfExtents.Len()
}

// CheckCollision is the broad phase: do the bounding spheres overlap
func CheckCollision(a, b *Body) bool {
	r := boundingRadius(a) + boundingRadius(b)
	d := a.position.Sub(b.position)
	return d.Dot(d) < r*r
}

// collide runs the narrow phase for a pair
func collide(a, b *Body) (manifold, bool) {
	switch {
	case a.shape.Kind == ShapeSphere && b.shape.Kind == ShapeSphere:
		return sphereSphere(a, b)
	case a.shape.Kind == ShapeSphere && b.shape.Kind == ShapeBox:
		return sphereBox(a, b)
	case a.shape.Kind == ShapeBox && b.shape.Kind == ShapeSphere:
		m, ok := sphereBox(b, a)
		if !ok {
			return m, false
		}
		return manifold{a: a, b: b, normal: m.normal.Mul(-1), depth: m.depth}, true
	default:
		return boxBox(a, b)
	}
}

func sphereSphere(a, b *Body) (manifold, bool) {
	d := b.position.Sub(a.position)
	dist := d.Len()
	r := a.shape.Radius + b.shape.Radius
	if dist >= r+contactMargin {
		return manifold{}, false
	}
	normal := mgl64.Vec3{0, 1, 0}
	if dist > 1e-9 {
		normal = d.Mul(1 / dist)
	}
	return manifold{a: a, b: b, normal: normal, depth: r - dist}, true
}

// sphereBox handles a sphere A against a box B that may be turned about Y
func sphereBox(s, box *Body) (manifold, bool) {
	rot := mgl64.Rotate3DY(box.yaw())
	local := rot.Transpose().Mul3x1(s.position.Sub(box.position))
	h := box.shape.HalfExtents

	closest := mgl64.Vec3{
		mgl64.Clamp(local.X(), -h.X(), h.X()),
		mgl64.Clamp(local.Y(), -h.Y(), h.Y()),
		mgl64.Clamp(local.Z(), -h.Z(), h.Z()),
	}
	d := local.Sub(closest)
	dist := d.Len()

	if dist > 1e-9 {
		if dist >= s.shape.Radius+contactMargin {
			return manifold{}, false
		}
		// normal from sphere towards box
		n := rot.Mul3x1(d.Mul(-1 / dist))
		return manifold{a: s, b: box, normal: n, depth: s.shape.Radius - dist}, true
	}

	// center inside the box: push out along the shallowest face
	best, axis, sign := math.Inf(1), 0, 1.0
	for i := 0; i < 3; i++ {
		pen := h[i] - math.Abs(local[i])
		if pen < best {
			best, axis = pen, i
			sign = 1
			if local[i] < 0 {
				sign = -1
			}
		}
	}
	var n mgl64.Vec3
	n[axis] = -sign
	return manifold{a: s, b: box, normal: rot.Mul3x1(n), depth: best + s.shape.Radius}, true
}

// boxBox uses separating axes on the ground plane plus the vertical axis.
// Boxes only ever turn about Y, so that is enough.
func boxBox(a, b *Body) (manifold, bool) {
	ra, rb := mgl64.Rotate3DY(a.yaw()), mgl64.Rotate3DY(b.yaw())
	axesA := [2]mgl64.Vec3{ra.Mul3x1(mgl64.Vec3{1, 0, 0}), ra.Mul3x1(mgl64.Vec3{0, 0, 1})}
	axesB := [2]mgl64.Vec3{rb.Mul3x1(mgl64.Vec3{1, 0, 0}), rb.Mul3x1(mgl64.Vec3{0, 0, 1})}
	ha, hb := a.shape.HalfExtents, b.shape.HalfExtents
	d := b.position.Sub(a.position)

	project := func(axes [2]mgl64.Vec3, h mgl64.Vec3, n mgl64.Vec3) float64 {
		return math.Abs(axes[0].Dot(n))*h.X() + math.Abs(axes[1].Dot(n))*h.Z()
	}

	best := math.Inf(1)
	var normal mgl64.Vec3
	candidates := []mgl64.Vec3{axesA[0], axesA[1], axesB[0], axesB[1]}
	for _, n := range candidates {
		overlap := project(axesA, ha, n) + project(axesB, hb, n) - math.Abs(d.Dot(n))
		if overlap <= -contactMargin {
			return manifold{}, false
		}
		if overlap < best {
			best = overlap
			normal = n
			if d.Dot(n) < 0 {
				normal = n.Mul(-1)
			}
		}
	}

	overlapY := ha.Y() + hb.Y() - math.Abs(d.Y())
	if overlapY <= -contactMargin {
		return manifold{}, false
	}
	if overlapY < best {
		best = overlapY
		normal = mgl64.Vec3{0, 1, 0}
		if d.Y() < 0 {
			normal = mgl64.Vec3{0, -1, 0}
		}
	}
	return manifold{a: a, b: b, normal: normal, depth: best}, true
}

const (
	// contactMargin lets resting bodies keep their contact while just touching
	contactMargin     = 0.01
	correctionPercent = 0.8
	correctionSlop    = 0.005
	restingSpeed      = 0.5
)

// resolve applies the restitution and friction impulses and pushes the pair apart
func resolve(m manifold) {
	a, b := m.a, m.b
	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	rv := b.velocity.Sub(a.velocity)
	vn := rv.Dot(m.normal)
	if vn < 0 {
		e := a.material.Restitution * b.material.Restitution
		if -vn < restingSpeed {
			e = 0
		}
		j := -(1 + e) * vn / invSum
		a.velocity = a.velocity.Sub(m.normal.Mul(j * a.invMass))
		b.velocity = b.velocity.Add(m.normal.Mul(j * b.invMass))

		tangent := rv.Sub(m.normal.Mul(vn))
		if tl := tangent.Len(); tl > 1e-9 {
			t := tangent.Mul(1 / tl)
			mu := a.material.Friction * b.material.Friction
			jt := math.Min(tl/invSum, mu*j)
			a.velocity = a.velocity.Add(t.Mul(jt * a.invMass))
			b.velocity = b.velocity.Sub(t.Mul(jt * b.invMass))
		}
	}

	if corr := math.Max(m.depth-correctionSlop, 0) / invSum * correctionPercent; corr > 0 {
		a.position = a.position.Sub(m.normal.Mul(corr * a.invMass))
		b.position = b.position.Add(m.normal.Mul(corr * b.invMass))
	}
}
