package fungeon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PathPoint is one control point of a path consumed by PathFollow. Rotation
// (Euler degrees) is only honored when HasRotation is set. Point sequences
// are supplied by the caller — curve generation and asset import live
// outside the core — and are read-only to the constraint system.
type PathPoint struct {
	Position    mgl64.Vec3
	Rotation    mgl64.Vec3
	HasRotation bool
}

func proposePathFollow(p *PathFollowParams, cur *Transform) (Transform, bool) {
	n := len(p.Points)
	if n < 2 {
		return Transform{}, false
	}

	segs := n - 1
	if p.Loop {
		segs = n
	}

	u := p.Distance
	if p.Loop {
		u = u - math.Floor(u)
	} else {
		u = clamp01(u)
	}

	// Map the normalized distance to a segment index and local parameter.
	ft := u * float64(segs)
	seg := int(ft)
	if seg >= segs {
		seg = segs - 1
	}
	local := ft - float64(seg)

	p0 := p.point(seg - 1)
	p1 := p.point(seg)
	p2 := p.point(seg + 1)
	p3 := p.point(seg + 2)

	out := *cur
	out.Position = catmullRom(p0.Position, p1.Position, p2.Position, p3.Position, local)

	switch {
	case p.AlignToPath:
		tan := catmullRomTangent(p0.Position, p1.Position, p2.Position, p3.Position, local)
		if tan.Dot(tan) >= dirEpsilon {
			f := tan.Normalize()
			forward := mgl64.Vec3{0, 0, -1}
			q, ok := frameRotation(forward, mgl64.Vec3{0, 1, 0}, f, worldUp)
			if !ok {
				q = mgl64.QuatBetweenVectors(forward, f)
			}
			out.SetQuat(q)
		}
	case p1.HasRotation && p2.HasRotation:
		q := mgl64.QuatSlerp(eulerToQuat(p1.Rotation), eulerToQuat(p2.Rotation), local)
		out.SetQuat(q)
	case p1.HasRotation:
		out.Rotation = p1.Rotation
	}

	return out, true
}

// point returns the control point at index i, wrapping when looping and
// clamping to the ends otherwise, so every segment has four neighbors.
func (p *PathFollowParams) point(i int) PathPoint {
	n := len(p.Points)
	if p.Loop {
		i = ((i % n) + n) % n
	} else if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return p.Points[i]
}

// catmullRom evaluates the uniform Catmull-Rom spline through p1..p2 at
// s in [0, 1], with p0 and p3 as the outer tangent controls.
func catmullRom(p0, p1, p2, p3 mgl64.Vec3, s float64) mgl64.Vec3 {
	s2 := s * s
	s3 := s2 * s
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = 0.5 * ((2 * p1[i]) +
			(-p0[i]+p2[i])*s +
			(2*p0[i]-5*p1[i]+4*p2[i]-p3[i])*s2 +
			(-p0[i]+3*p1[i]-3*p2[i]+p3[i])*s3)
	}
	return out
}

// catmullRomTangent is the derivative of catmullRom with respect to s.
func catmullRomTangent(p0, p1, p2, p3 mgl64.Vec3, s float64) mgl64.Vec3 {
	s2 := s * s
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = 0.5 * ((-p0[i] + p2[i]) +
			2*(2*p0[i]-5*p1[i]+4*p2[i]-p3[i])*s +
			3*(-p0[i]+3*p1[i]-3*p2[i]+p3[i])*s2)
	}
	return out
}
