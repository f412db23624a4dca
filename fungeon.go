package fungeon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Entity is an opaque handle to an entity in a World. The zero value is
// NoEntity and never refers to a live entity. Handles are arena indices
// paired with a generation counter: destroying an entity bumps the
// generation, so a stale handle can never alias a later entity reusing the
// same slot.
type Entity struct {
	id  uint32
	gen uint32
}

// NoEntity is the zero Entity. Constraint descriptors use it for "no target".
var NoEntity = Entity{}

// Valid reports whether e was ever issued by a World. It does not check
// liveness; use World.Alive for that.
func (e Entity) Valid() bool {
	return e.gen != 0
}

// Axis identifies one of the six signed cardinal local axes, or none.
type Axis uint8

const (
	AxisNone Axis = iota // unset; constraints treat this as "no axis chosen"
	AxisX
	AxisY
	AxisZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

// Vec returns the unit vector for the axis. AxisNone returns the zero vector.
func (a Axis) Vec() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	case AxisZ:
		return mgl64.Vec3{0, 0, 1}
	case AxisNegX:
		return mgl64.Vec3{-1, 0, 0}
	case AxisNegY:
		return mgl64.Vec3{0, -1, 0}
	case AxisNegZ:
		return mgl64.Vec3{0, 0, -1}
	}
	return mgl64.Vec3{}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "+X"
	case AxisY:
		return "+Y"
	case AxisZ:
		return "+Z"
	case AxisNegX:
		return "-X"
	case AxisNegY:
		return "-Y"
	case AxisNegZ:
		return "-Z"
	}
	return "none"
}

// AxisMask selects a subset of the three coordinate axes.
// Combine with bitwise OR (e.g. MaskX | MaskZ).
type AxisMask uint8

const (
	MaskX AxisMask = 1 << iota
	MaskY
	MaskZ
	MaskAll = MaskX | MaskY | MaskZ
)

// Has reports whether the mask includes the axis at index i (0=X, 1=Y, 2=Z).
func (m AxisMask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// worldUp is the fixed world-space up reference used for roll
// disambiguation and floor clamping.
var worldUp = mgl64.Vec3{0, 1, 0}

// dirEpsilon is the squared-length floor below which direction vectors are
// considered degenerate.
const dirEpsilon = 1e-9

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteVec3(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func finiteTransform(t Transform) bool {
	return finiteVec3(t.Position) && finiteVec3(t.Rotation) && finiteVec3(t.Scale)
}
