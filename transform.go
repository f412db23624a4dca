package fungeon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the spatial component: position, rotation, and scale in world
// space. Rotation is stored as Euler angles in degrees, applied in XYZ
// order. Euler angles are a deliberately low-fidelity representation; gimbal
// ambiguity is accepted, not solved.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in degrees, XYZ order
	Scale    mgl64.Vec3
}

// NewTransform returns a Transform at the origin with identity rotation and
// unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec3{1, 1, 1}}
}

// Translate moves the transform by delta. Deltas compose additively, so
// repeated per-frame calls accumulate predictably.
func (t *Transform) Translate(delta mgl64.Vec3) {
	t.Position = t.Position.Add(delta)
}

// Rotate adds delta (degrees per axis) to the rotation. Like Translate,
// deltas are additive, never wholesale replacement.
func (t *Transform) Rotate(delta mgl64.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
}

// Quat returns the rotation as a unit quaternion.
func (t *Transform) Quat() mgl64.Quat {
	return eulerToQuat(t.Rotation)
}

// SetQuat stores q as Euler degrees. The resulting angles are canonical
// (pitch in [-90, 90]) and may differ numerically from angles previously
// set, while describing the same rotation.
func (t *Transform) SetQuat(q mgl64.Quat) {
	t.Rotation = quatToEuler(q)
}

// eulerToQuat converts XYZ-order Euler degrees to a unit quaternion.
// The composed rotation matrix is Rx * Ry * Rz (column-vector convention).
func eulerToQuat(deg mgl64.Vec3) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(deg[0]), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(deg[1]), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(deg[2]), mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// quatToEuler extracts XYZ-order Euler degrees from a unit quaternion.
// Near the gimbal poles (pitch = ±90°) the Z angle collapses to zero.
func quatToEuler(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4()

	sy := m.At(0, 2)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}

	const pole = 1 - 1e-7
	var x, y, z float64
	switch {
	case sy >= pole:
		x = math.Atan2(m.At(1, 0), m.At(1, 1))
		y = math.Pi / 2
	case sy <= -pole:
		x = -math.Atan2(m.At(1, 0), m.At(1, 1))
		y = -math.Pi / 2
	default:
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		y = math.Asin(sy)
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	}

	return mgl64.Vec3{mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)}
}

// frameRotation builds the rotation that maps the local axis a onto the
// world direction f and the local axis b as close to refUp as f allows.
// a and b must be orthonormal; f must be unit length. Fails (ok=false) when
// f is parallel to refUp, leaving roll undefined.
func frameRotation(a, b, f, refUp mgl64.Vec3) (mgl64.Quat, bool) {
	u := refUp.Sub(f.Mul(refUp.Dot(f)))
	if u.Dot(u) < dirEpsilon {
		return mgl64.Quat{}, false
	}
	u = u.Normalize()

	local := mat4Basis(a, b, a.Cross(b))
	world := mat4Basis(f, u, f.Cross(u))
	return mgl64.Mat4ToQuat(world.Mul4(local.Transpose())).Normalize(), true
}

// mat4Basis assembles a rotation matrix from three orthonormal columns.
func mat4Basis(c0, c1, c2 mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Mat4FromCols(c0.Vec4(0), c1.Vec4(0), c2.Vec4(0), mgl64.Vec4{0, 0, 0, 1})
}

// blendTransform blends the proposed transform into t by influence:
// linear interpolation on position and scale, spherical interpolation on
// rotation. Influence 1 replaces t wholesale so channel copies stay exact.
func blendTransform(t *Transform, proposed Transform, influence float64) {
	if influence >= 1 {
		*t = proposed
		return
	}
	t.Position = lerpVec3(t.Position, proposed.Position, influence)
	t.Scale = lerpVec3(t.Scale, proposed.Scale, influence)
	if t.Rotation != proposed.Rotation {
		t.SetQuat(mgl64.QuatSlerp(t.Quat(), eulerToQuat(proposed.Rotation), influence))
	}
}
