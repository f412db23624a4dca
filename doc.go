// Package fungeon is a retained-mode entity/component/system runtime with a
// declarative transform-constraint solver.
//
// Entities live in a [World] and aggregate plain-data components, one
// instance per kind. The core component is [Transform] (position, Euler
// rotation in degrees, scale). An entity may also carry a
// [ConstraintComponent]: an ordered list of constraint descriptors that
// recompute the entity's Transform each fixed tick from other entities'
// transforms, paths, or fixed bounds.
//
// # Quick start
//
//	world := fungeon.NewWorld()
//	sched := fungeon.NewScheduler(world, 1.0/60.0)
//	sched.Add(fungeon.NewConstraintSystem(), 0)
//
//	sun := world.Create("sun")
//	fungeon.MustAdd(world, sun, fungeon.NewTransform())
//
//	planet := world.Create("planet")
//	fungeon.MustAdd(world, planet, fungeon.NewTransform())
//	fungeon.AddConstraint(world, planet, fungeon.Constraint{
//		Enabled:   true,
//		Influence: 1,
//		Params: &fungeon.PivotParams{
//			Axis: fungeon.AxisY, Speed: 45, Radius: 4,
//		},
//	})
//
//	for {
//		sched.Advance(elapsed)
//		sched.Render(frameDelta)
//	}
//
// # Constraints
//
// Eleven constraint kinds are available: TrackTo, LookAt, CopyTransform,
// Limit, Distance, Lock, PathFollow, Orient, Pivot, Spring, and Floor. Each
// descriptor carries an enabled flag, an influence in [0, 1] blending the
// proposed transform into the entity's current one, and an integer priority.
// Descriptors evaluate in priority-descending order; ties resolve by
// insertion order. A descriptor whose target entity has been destroyed is
// skipped for that tick, never an error.
//
// # Scheduling
//
// The [Scheduler] runs systems on a fixed timestep via [Scheduler.Advance]
// and a separate variable-rate render pass via [Scheduler.Render].
// Constraint evaluation happens only in the fixed pass, so results are
// independent of display refresh rate. Cosmetic interpolation (tweens via
// [TweenSystem], built on [gween]) belongs in the render pass.
//
// # Rendering
//
// The core never draws. The [SceneSync] system mirrors entity parent/child
// relationships onto render-facing [Node] handles; the render backend is an
// external collaborator. An [Ebitengine] adapter with a concrete Node, an
// orthographic projector, and a Run game-loop driver lives in the render
// subpackage.
//
// [gween]: https://github.com/tanema/gween
// [Ebitengine]: https://ebitengine.org
package fungeon
