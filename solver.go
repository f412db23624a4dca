package fungeon

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ConstraintSystem is the scheduler-side solver. Each fixed tick it visits
// every entity holding both a Transform and a ConstraintComponent, resolves
// descriptor targets, evaluates enabled descriptors in priority order, and
// blends each proposal into the entity's Transform by influence.
//
// Evaluation is a pure function of current world state, dt, and the
// descriptors' own mutable accumulators; it never blocks. A broken
// descriptor (missing target, degenerate geometry, non-finite proposal)
// degrades to a per-tick skip and can never abort the tick or corrupt
// other entities.
type ConstraintSystem struct {
	idx []int // reused evaluation-order buffer
}

// NewConstraintSystem creates the solver system. Register it on a
// Scheduler; constraint evaluation belongs only in the fixed update pass.
func NewConstraintSystem() *ConstraintSystem {
	return &ConstraintSystem{}
}

// Update evaluates all constraint components for one fixed tick of dt
// seconds.
func (s *ConstraintSystem) Update(w *World, dt float64) {
	Each(w, func(e Entity, cc *ConstraintComponent) {
		if len(cc.constraints) == 0 {
			return
		}
		t := Get[Transform](w, e)
		if t == nil {
			return
		}
		s.idx = cc.sortedIndices(s.idx[:0])
		for _, i := range s.idx {
			evalConstraint(w, e, &cc.constraints[i], t, dt)
		}
	})
}

// evalConstraint runs a single descriptor against the owner's transform.
func evalConstraint(w *World, owner Entity, con *Constraint, t *Transform, dt float64) {
	if !con.Enabled || con.Params == nil || con.Influence <= 0 {
		return
	}

	var target *Transform
	if con.Target.Valid() {
		if !w.Alive(con.Target) {
			debugf("%s on %q: target entity gone, skipping", con.Params.Kind(), w.Name(owner))
			return
		}
		target = Get[Transform](w, con.Target)
		if target == nil {
			debugf("%s on %q: target has no transform, skipping", con.Params.Kind(), w.Name(owner))
			return
		}
	}
	// Targets can be rebound after Add, so the at-add requirement is
	// re-checked defensively here.
	if needsTarget(con.Params.Kind()) && target == nil {
		return
	}

	proposed, ok := propose(con.Params, t, target, dt)
	if !ok {
		return
	}
	if !finiteTransform(proposed) {
		debugf("%s on %q: non-finite proposal, skipping", con.Params.Kind(), w.Name(owner))
		return
	}
	blendTransform(t, proposed, con.Influence)
}

// propose dispatches to the kind-specific algorithm. ok=false means "no
// change from this descriptor" — either by design (Distance already in
// range) or as the numeric-instability fallback.
func propose(params ConstraintParams, cur, target *Transform, dt float64) (Transform, bool) {
	switch p := params.(type) {
	case *TrackToParams:
		return proposeTrackTo(p, cur, target)
	case *LookAtParams:
		return proposeLookAt(p, cur, target)
	case *CopyTransformParams:
		return proposeCopyTransform(p, cur, target)
	case *OrientParams:
		return proposeOrient(p, cur, target)
	case *LimitParams:
		return proposeLimit(p, cur)
	case *DistanceParams:
		return proposeDistance(p, cur, target)
	case *LockParams:
		return proposeLock(p, cur)
	case *PathFollowParams:
		return proposePathFollow(p, cur)
	case *PivotParams:
		return proposePivot(p, cur, dt)
	case *SpringParams:
		return proposeSpring(p, cur, target, dt)
	case *FloorParams:
		return proposeFloor(p, cur)
	}
	return Transform{}, false
}

func proposeTrackTo(p *TrackToParams, cur, target *Transform) (Transform, bool) {
	dir := target.Position.Sub(cur.Position)
	if dir.Dot(dir) < dirEpsilon {
		return Transform{}, false
	}
	f := dir.Normalize()

	axis := p.TrackAxis.Vec()
	var q mgl64.Quat
	if p.UpAxis != AxisNone {
		var ok bool
		q, ok = frameRotation(axis, p.UpAxis.Vec(), f, worldUp)
		if !ok {
			// Aiming straight up or down; roll is undefined, fall back
			// to the minimal rotation.
			q = mgl64.QuatBetweenVectors(axis, f)
		}
	} else {
		q = mgl64.QuatBetweenVectors(axis, f)
	}

	out := *cur
	out.SetQuat(q)
	return out, true
}

func proposeLookAt(p *LookAtParams, cur, target *Transform) (Transform, bool) {
	dir := target.Position.Sub(cur.Position)
	if dir.Dot(dir) < dirEpsilon {
		return Transform{}, false
	}
	f := dir.Normalize()

	forward := mgl64.Vec3{0, 0, -1}
	q, ok := frameRotation(forward, mgl64.Vec3{0, 1, 0}, f, p.up())
	if !ok {
		q = mgl64.QuatBetweenVectors(forward, f)
	}
	if p.Offset != (mgl64.Vec3{}) {
		q = q.Mul(eulerToQuat(p.Offset))
	}

	out := *cur
	out.SetQuat(q)
	return out, true
}

func proposeCopyTransform(p *CopyTransformParams, cur, target *Transform) (Transform, bool) {
	out := *cur
	if p.Channels&CopyPosition != 0 {
		out.Position = target.Position
	}
	if p.Channels&CopyRotation != 0 {
		out.Rotation = target.Rotation
	}
	if p.Channels&CopyScale != 0 {
		out.Scale = target.Scale
	}
	return out, true
}

func proposeOrient(p *OrientParams, cur, target *Transform) (Transform, bool) {
	tq := eulerToQuat(target.Rotation)
	if p.Offset != (mgl64.Vec3{}) {
		tq = tq.Mul(eulerToQuat(p.Offset))
	}
	out := *cur
	out.SetQuat(mgl64.QuatSlerp(cur.Quat(), tq, p.MixWeight))
	return out, true
}
