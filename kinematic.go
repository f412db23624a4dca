package fungeon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kinematic and bounding constraint algorithms: Limit, Distance, Lock,
// Pivot, Spring, Floor. Each returns the proposed transform and whether the
// descriptor contributes anything this tick.

func proposeLimit(p *LimitParams, cur *Transform) (Transform, bool) {
	out := *cur
	if p.LimitPosition {
		for i := 0; i < 3; i++ {
			out.Position[i] = math.Min(math.Max(out.Position[i], p.MinPosition[i]), p.MaxPosition[i])
		}
	}
	if p.LimitRotation {
		for i := 0; i < 3; i++ {
			out.Rotation[i] = math.Min(math.Max(out.Rotation[i], p.MinRotation[i]), p.MaxRotation[i])
		}
	}
	return out, true
}

func proposeDistance(p *DistanceParams, cur, target *Transform) (Transform, bool) {
	off := cur.Position.Sub(target.Position)
	d := off.Len()

	want := d
	switch {
	case d < p.MinDistance:
		want = p.MinDistance
	case d > p.MaxDistance:
		want = p.MaxDistance
	default:
		return Transform{}, false
	}
	if d < dirEpsilon {
		// Owner sits on the target; the push-out direction is undefined.
		return Transform{}, false
	}

	correction := (want - d) * p.Springiness
	out := *cur
	out.Position = cur.Position.Add(off.Mul(correction / d))
	return out, true
}

func proposeLock(p *LockParams, cur *Transform) (Transform, bool) {
	out := *cur
	for i := 0; i < 3; i++ {
		if p.PositionAxes.Has(i) {
			out.Position[i] = p.InitialPosition[i]
		}
		if p.RotationAxes.Has(i) {
			out.Rotation[i] = p.InitialRotation[i]
		}
	}
	return out, true
}

// orbitBasis returns the in-plane basis (u, v) for orbiting around the
// axis, chosen so positive speed orbits counter-clockwise when viewed from
// the axis tip. Negated axes flip the direction by swapping v's sign.
func orbitBasis(a Axis) (u, v mgl64.Vec3) {
	switch a {
	case AxisX:
		return mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}
	case AxisNegX:
		return mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, -1}
	case AxisY:
		return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}
	case AxisNegY:
		return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{-1, 0, 0}
	case AxisZ:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	case AxisNegZ:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, -1, 0}
	}
	return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}
}

func proposePivot(p *PivotParams, cur *Transform, dt float64) (Transform, bool) {
	p.CurrentAngle = math.Mod(p.CurrentAngle+p.Speed*dt, 360)
	if p.CurrentAngle < 0 {
		p.CurrentAngle += 360
	}

	a := mgl64.DegToRad(p.CurrentAngle)
	u, v := orbitBasis(p.Axis)
	out := *cur
	out.Position = p.Pivot.
		Add(u.Mul(math.Cos(a) * p.Radius)).
		Add(v.Mul(math.Sin(a) * p.Radius))
	return out, true
}

func proposeSpring(p *SpringParams, cur, target *Transform, dt float64) (Transform, bool) {
	if target == nil {
		return Transform{}, false
	}

	off := cur.Position.Sub(target.Position)
	d := off.Len()

	// Semi-implicit Euler: accelerate, then move with the new velocity.
	force := p.Velocity.Mul(-p.Damping)
	if d > dirEpsilon {
		stretch := d - p.RestLength
		force = force.Add(off.Mul(-p.Stiffness * stretch / d))
	}
	p.Velocity = p.Velocity.Add(force.Mul(dt))

	out := *cur
	out.Position = cur.Position.Add(p.Velocity.Mul(dt))
	return out, true
}

func proposeFloor(p *FloorParams, cur *Transform) (Transform, bool) {
	minY := p.FloorHeight + p.Offset
	if cur.Position[1] >= minY {
		return Transform{}, false
	}
	if p.BounceAmount > 0 && p.Velocity[1] < 0 {
		p.Velocity[1] = -p.Velocity[1] * p.BounceAmount
	}
	out := *cur
	out.Position[1] = minY
	return out, true
}
