package fungeon

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-7

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func assertVec3Tol(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

// assertParallel checks that got points in the same direction as want.
func assertParallel(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	g := got.Normalize()
	w := want.Normalize()
	if g.Dot(w) < 1-1e-6 {
		t.Errorf("%s = %v, want parallel to %v (dot %v)", name, got, want, g.Dot(w))
	}
}
