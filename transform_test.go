package fungeon

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform()
	assertVec3(t, "position", tr.Position, mgl64.Vec3{})
	assertVec3(t, "rotation", tr.Rotation, mgl64.Vec3{})
	assertVec3(t, "scale", tr.Scale, mgl64.Vec3{1, 1, 1})
}

func TestTranslateIsAdditive(t *testing.T) {
	tr := NewTransform()
	tr.Translate(mgl64.Vec3{1, 2, 3})
	tr.Translate(mgl64.Vec3{1, 2, 3})
	assertVec3(t, "position", tr.Position, mgl64.Vec3{2, 4, 6})
}

func TestRotateIsAdditive(t *testing.T) {
	tr := NewTransform()
	tr.Rotate(mgl64.Vec3{0, 30, 0})
	tr.Rotate(mgl64.Vec3{0, 30, 10})
	assertVec3(t, "rotation", tr.Rotation, mgl64.Vec3{0, 60, 10})
}

func TestQuatYaw90RotatesForward(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl64.Vec3{0, 90, 0}
	// +90° yaw carries local -Z to world -X.
	got := tr.Quat().Rotate(mgl64.Vec3{0, 0, -1})
	assertVec3(t, "forward", got, mgl64.Vec3{-1, 0, 0})
}

func TestEulerQuatRoundTrip(t *testing.T) {
	want := mgl64.Vec3{30, 45, 60}
	got := quatToEuler(eulerToQuat(want))
	assertVec3Tol(t, "euler", got, want, 1e-6)
}

func TestEulerQuatRoundTripNegative(t *testing.T) {
	want := mgl64.Vec3{-20, -75, 110}
	got := quatToEuler(eulerToQuat(want))
	assertVec3Tol(t, "euler", got, want, 1e-6)
}

func TestSetQuatIdentity(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl64.Vec3{10, 20, 30}
	tr.SetQuat(mgl64.QuatIdent())
	assertVec3Tol(t, "rotation", tr.Rotation, mgl64.Vec3{}, 1e-6)
}

func TestQuatToEulerGimbalPole(t *testing.T) {
	q := eulerToQuat(mgl64.Vec3{0, 90, 0})
	got := quatToEuler(q)
	// At the pole the Z angle collapses; the rotation must still match.
	gq := eulerToQuat(got)
	f := q.Rotate(mgl64.Vec3{0, 0, -1})
	gf := gq.Rotate(mgl64.Vec3{0, 0, -1})
	assertVec3Tol(t, "forward", gf, f, 1e-6)
}

func TestBlendTransformFullInfluence(t *testing.T) {
	cur := NewTransform()
	cur.Position = mgl64.Vec3{1, 1, 1}
	proposed := NewTransform()
	proposed.Position = mgl64.Vec3{5, 5, 5}
	proposed.Rotation = mgl64.Vec3{0, 45, 0}

	blendTransform(&cur, proposed, 1)
	assertVec3(t, "position", cur.Position, proposed.Position)
	assertVec3(t, "rotation", cur.Rotation, proposed.Rotation)
}

func TestBlendTransformHalfInfluence(t *testing.T) {
	cur := NewTransform()
	proposed := NewTransform()
	proposed.Position = mgl64.Vec3{4, 0, 0}

	blendTransform(&cur, proposed, 0.5)
	assertVec3(t, "position", cur.Position, mgl64.Vec3{2, 0, 0})
}

func TestBlendTransformRotationSlerp(t *testing.T) {
	cur := NewTransform()
	proposed := NewTransform()
	proposed.Rotation = mgl64.Vec3{0, 90, 0}

	blendTransform(&cur, proposed, 0.5)
	assertVec3Tol(t, "rotation", cur.Rotation, mgl64.Vec3{0, 45, 0}, 1e-6)
}

func TestFrameRotationMapsAxes(t *testing.T) {
	// Track +Z toward +X, keeping +Y as up.
	q, ok := frameRotation(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, worldUp)
	if !ok {
		t.Fatal("frameRotation failed for orthogonal input")
	}
	assertVec3Tol(t, "track", q.Rotate(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 0, 0}, 1e-6)
	assertVec3Tol(t, "up", q.Rotate(mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 1, 0}, 1e-6)
}

func TestFrameRotationDegenerateUp(t *testing.T) {
	// Aiming straight up leaves roll undefined.
	_, ok := frameRotation(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}, worldUp)
	if ok {
		t.Error("frameRotation should fail when the aim direction is parallel to up")
	}
}
