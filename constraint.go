package fungeon

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// ConstraintKind tags the algorithm a constraint descriptor runs.
type ConstraintKind uint8

const (
	TrackTo ConstraintKind = iota
	LookAt
	CopyTransform
	Limit
	Distance
	Lock
	PathFollow
	Orient
	Pivot
	Spring
	Floor
)

var constraintKindNames = [...]string{
	"TrackTo", "LookAt", "CopyTransform", "Limit", "Distance", "Lock",
	"PathFollow", "Orient", "Pivot", "Spring", "Floor",
}

func (k ConstraintKind) String() string {
	if int(k) < len(constraintKindNames) {
		return constraintKindNames[k]
	}
	return "Unknown"
}

// needsTarget reports whether the kind is meaningless without a target
// entity. Spring is deliberately absent: a targetless spring is a no-op,
// not an error.
func needsTarget(k ConstraintKind) bool {
	switch k {
	case TrackTo, LookAt, CopyTransform, Distance, Orient:
		return true
	}
	return false
}

// ConstraintParams is the kind-specific parameter variant of a descriptor.
// Implementations are pointer types; kinds with per-descriptor mutable
// state (pivot angle, spring velocity) keep it as fields on the params
// struct so serialization and hot-reload stay straightforward.
type ConstraintParams interface {
	Kind() ConstraintKind
	validate() error
}

// Constraint is one descriptor in a ConstraintComponent's ordered list.
type Constraint struct {
	// Target is a weak reference to the entity whose transform drives this
	// constraint, or NoEntity for kinds that need none. Liveness is checked
	// every evaluation; a dangling target skips the descriptor.
	Target Entity

	Enabled   bool
	Influence float64 // blend factor in [0, 1]; clamped on Add
	Priority  int     // higher evaluates earlier; ties by insertion order

	Params ConstraintParams

	seq int // insertion sequence, the tie-break
}

// NewConstraint returns an enabled, full-influence descriptor for params.
func NewConstraint(params ConstraintParams) Constraint {
	return Constraint{Enabled: true, Influence: 1, Params: params}
}

// ConstraintComponent holds an entity's ordered constraint list. The
// component owns its descriptors; they are never shared between entities.
type ConstraintComponent struct {
	constraints []Constraint
	nextSeq     int
}

// maxTargetDepth caps the target-chain walk during cycle detection so a
// malformed graph can never hang the add.
const maxTargetDepth = 64

// Add validates and appends a descriptor, returning its index. Influence is
// clamped to [0, 1]. Returns a *ConfigurationError for nil or malformed
// params, a missing target on a kind that requires one, or a target chain
// that leads back to owner. Lock descriptors capture the owner's current
// transform here unless already captured; Pivot descriptors with Radius 0
// derive it from the owner's current offset to the pivot.
func (c *ConstraintComponent) Add(w *World, owner Entity, con Constraint) (int, error) {
	if con.Params == nil {
		return -1, configErrorf("constraint has no params")
	}
	kind := con.Params.Kind()
	if err := con.Params.validate(); err != nil {
		return -1, err
	}
	if needsTarget(kind) && !con.Target.Valid() {
		return -1, configErrorf("%s constraint requires a target", kind)
	}
	if con.Target.Valid() {
		if con.Target == owner {
			return -1, configErrorf("%s constraint targets its own entity", kind)
		}
		if w != nil && targetChainContains(w, con.Target, owner, maxTargetDepth, nil) {
			return -1, configErrorf("%s constraint closes a target cycle", kind)
		}
	}
	con.Influence = clamp01(con.Influence)

	if w != nil {
		if lp, ok := con.Params.(*LockParams); ok && !lp.captured {
			if t := Get[Transform](w, owner); t != nil {
				lp.Capture(t)
			}
		}
		if pp, ok := con.Params.(*PivotParams); ok && pp.Radius == 0 {
			if err := pp.captureRadius(Get[Transform](w, owner)); err != nil {
				return -1, err
			}
		}
	}

	con.seq = c.nextSeq
	c.nextSeq++
	c.constraints = append(c.constraints, con)
	return len(c.constraints) - 1, nil
}

// AddConstraint appends a descriptor to the entity's ConstraintComponent,
// attaching one first if needed. Panics if the entity is dead.
func AddConstraint(w *World, owner Entity, con Constraint) (int, error) {
	cc := Get[ConstraintComponent](w, owner)
	if cc == nil {
		cc = MustAdd(w, owner, ConstraintComponent{})
	}
	return cc.Add(w, owner, con)
}

// targetChainContains walks constraint targets from `from` looking for
// `needle`. Depth is capped; running out of budget is treated as cyclic so
// the walk never loops.
func targetChainContains(w *World, from, needle Entity, depth int, seen map[Entity]bool) bool {
	if from == needle {
		return true
	}
	if depth <= 0 {
		return true
	}
	if seen[from] {
		return false
	}
	if seen == nil {
		seen = make(map[Entity]bool)
	}
	seen[from] = true
	cc := Get[ConstraintComponent](w, from)
	if cc == nil {
		return false
	}
	for i := range cc.constraints {
		t := cc.constraints[i].Target
		if t.Valid() && w.Alive(t) && targetChainContains(w, t, needle, depth-1, seen) {
			return true
		}
	}
	return false
}

// Remove deletes the descriptor at index, preserving the order of the rest.
// Panics if index is out of range.
func (c *ConstraintComponent) Remove(index int) {
	if index < 0 || index >= len(c.constraints) {
		panic("fungeon: constraint index out of range")
	}
	c.constraints = slices.Delete(c.constraints, index, index+1)
}

// Clear drops all descriptors.
func (c *ConstraintComponent) Clear() {
	c.constraints = c.constraints[:0]
}

// SetEnabled toggles the descriptor at index. Panics if out of range.
func (c *ConstraintComponent) SetEnabled(index int, enabled bool) {
	c.at(index).Enabled = enabled
}

// SetInfluence sets the descriptor's influence, clamped to [0, 1].
// Panics if index is out of range.
func (c *ConstraintComponent) SetInfluence(index int, influence float64) {
	c.at(index).Influence = clamp01(influence)
}

// At returns the descriptor at index for in-place parameter edits.
// Panics if index is out of range.
func (c *ConstraintComponent) At(index int) *Constraint {
	return c.at(index)
}

func (c *ConstraintComponent) at(index int) *Constraint {
	if index < 0 || index >= len(c.constraints) {
		panic("fungeon: constraint index out of range")
	}
	return &c.constraints[index]
}

// Len returns the number of descriptors.
func (c *ConstraintComponent) Len() int {
	return len(c.constraints)
}

// Constraints returns the descriptor list in insertion order. The returned
// slice MUST NOT be mutated by the caller.
func (c *ConstraintComponent) Constraints() []Constraint {
	return c.constraints
}

// sortedIndices fills buf with descriptor indices in evaluation order:
// priority descending, ties by insertion order. The order is stable and
// reproducible for identical list contents.
func (c *ConstraintComponent) sortedIndices(buf []int) []int {
	for i := range c.constraints {
		buf = append(buf, i)
	}
	slices.SortStableFunc(buf, func(a, b int) int {
		ca, cb := &c.constraints[a], &c.constraints[b]
		switch {
		case ca.Priority > cb.Priority:
			return -1
		case ca.Priority < cb.Priority:
			return 1
		case ca.seq < cb.seq:
			return -1
		case ca.seq > cb.seq:
			return 1
		}
		return 0
	})
	return buf
}

// --- Per-kind parameter variants ---

// TrackToParams rotates the owner so TrackAxis points at the target's world
// position. UpAxis, when set, is kept as close to world up as possible to
// disambiguate roll. Position is untouched.
type TrackToParams struct {
	TrackAxis Axis
	UpAxis    Axis // optional; AxisNone leaves roll to the minimal rotation
}

func (p *TrackToParams) Kind() ConstraintKind { return TrackTo }

func (p *TrackToParams) validate() error {
	if p.TrackAxis == AxisNone {
		return configErrorf("TrackTo needs a track axis")
	}
	if p.UpAxis != AxisNone {
		if d := p.TrackAxis.Vec().Dot(p.UpAxis.Vec()); d == 1 || d == -1 {
			return configErrorf("TrackTo up axis %s is parallel to track axis %s", p.UpAxis, p.TrackAxis)
		}
	}
	return nil
}

// LookAtParams aims the owner's local -Z at the target with an explicit up
// vector, then applies an Euler offset (degrees) after aiming.
type LookAtParams struct {
	Up     mgl64.Vec3 // zero vector defaults to world +Y
	Offset mgl64.Vec3 // Euler degrees applied after aiming
}

func (p *LookAtParams) Kind() ConstraintKind { return LookAt }

func (p *LookAtParams) validate() error {
	return nil
}

func (p *LookAtParams) up() mgl64.Vec3 {
	if p.Up.Dot(p.Up) < dirEpsilon {
		return worldUp
	}
	return p.Up.Normalize()
}

// CopyChannels selects which transform channels CopyTransform overwrites.
type CopyChannels uint8

const (
	CopyPosition CopyChannels = 1 << iota
	CopyRotation
	CopyScale
	CopyAll = CopyPosition | CopyRotation | CopyScale
)

// CopyTransformParams overwrites the selected channels from the target
// verbatim, before the influence blend.
type CopyTransformParams struct {
	Channels CopyChannels
}

func (p *CopyTransformParams) Kind() ConstraintKind { return CopyTransform }

func (p *CopyTransformParams) validate() error {
	if p.Channels == 0 {
		return configErrorf("CopyTransform copies no channels")
	}
	return nil
}

// LimitParams clamps position and/or rotation into per-axis [min, max]
// ranges. No target is needed.
type LimitParams struct {
	LimitPosition bool
	MinPosition   mgl64.Vec3
	MaxPosition   mgl64.Vec3

	LimitRotation bool
	MinRotation   mgl64.Vec3 // degrees
	MaxRotation   mgl64.Vec3 // degrees
}

func (p *LimitParams) Kind() ConstraintKind { return Limit }

func (p *LimitParams) validate() error {
	if !p.LimitPosition && !p.LimitRotation {
		return configErrorf("Limit constrains neither position nor rotation")
	}
	for i := 0; i < 3; i++ {
		if p.LimitPosition && p.MinPosition[i] > p.MaxPosition[i] {
			return configErrorf("Limit position min exceeds max on axis %d", i)
		}
		if p.LimitRotation && p.MinRotation[i] > p.MaxRotation[i] {
			return configErrorf("Limit rotation min exceeds max on axis %d", i)
		}
	}
	return nil
}

// DistanceParams keeps the owner's distance to the target inside
// [MinDistance, MaxDistance]. Springiness in [0, 1] is the fraction of the
// correction applied per tick: 1 snaps to the boundary in a single tick,
// smaller values approach it over successive ticks.
type DistanceParams struct {
	MinDistance float64
	MaxDistance float64
	Springiness float64
}

func (p *DistanceParams) Kind() ConstraintKind { return Distance }

func (p *DistanceParams) validate() error {
	if p.MinDistance < 0 || p.MaxDistance < p.MinDistance {
		return configErrorf("Distance needs 0 <= min <= max, got [%g, %g]", p.MinDistance, p.MaxDistance)
	}
	if p.Springiness < 0 || p.Springiness > 1 {
		return configErrorf("Distance springiness %g outside [0, 1]", p.Springiness)
	}
	return nil
}

// LockParams forces the flagged position/rotation axes back to values
// captured when the constraint was added (or at the last Capture call).
// Unflagged axes pass through unchanged.
type LockParams struct {
	PositionAxes AxisMask
	RotationAxes AxisMask

	InitialPosition mgl64.Vec3
	InitialRotation mgl64.Vec3 // degrees

	captured bool
}

func (p *LockParams) Kind() ConstraintKind { return Lock }

func (p *LockParams) validate() error {
	if p.PositionAxes == 0 && p.RotationAxes == 0 {
		return configErrorf("Lock locks no axes")
	}
	return nil
}

// Capture stores t's current position and rotation as the locked values.
// Add calls this automatically the first time, using the owner's transform.
func (p *LockParams) Capture(t *Transform) {
	p.InitialPosition = t.Position
	p.InitialRotation = t.Rotation
	p.captured = true
}

// OrientParams blends the owner's rotation toward the target's rotation
// composed with a fixed Euler Offset. MixWeight in [0, 1] scales how much
// of the target's rotation participates before the outer influence blend.
type OrientParams struct {
	Offset    mgl64.Vec3 // Euler degrees
	MixWeight float64
}

func (p *OrientParams) Kind() ConstraintKind { return Orient }

func (p *OrientParams) validate() error {
	if p.MixWeight < 0 || p.MixWeight > 1 {
		return configErrorf("Orient mix weight %g outside [0, 1]", p.MixWeight)
	}
	return nil
}

// PivotParams orbits the owner around Pivot on the chosen rotation axis at
// Speed degrees per second. CurrentAngle is the descriptor's mutable phase
// accumulator: it advances by Speed*dt each tick and survives disable/
// enable, so pausing preserves orbital phase. Radius 0 at add time captures
// the owner's in-plane distance to the pivot.
type PivotParams struct {
	Pivot        mgl64.Vec3
	Axis         Axis // AxisNone defaults to AxisY
	Speed        float64
	Radius       float64
	InitialAngle float64 // degrees

	CurrentAngle float64 // mutable state; seeded from InitialAngle on Add
	started      bool
}

func (p *PivotParams) Kind() ConstraintKind { return Pivot }

func (p *PivotParams) validate() error {
	if p.Axis == AxisNone {
		p.Axis = AxisY
	}
	if p.Radius < 0 {
		return configErrorf("Pivot radius %g is negative", p.Radius)
	}
	if !p.started {
		p.CurrentAngle = p.InitialAngle
		p.started = true
	}
	return nil
}

func (p *PivotParams) captureRadius(t *Transform) error {
	if t == nil {
		return configErrorf("Pivot needs an explicit radius when the owner has no transform")
	}
	off := t.Position.Sub(p.Pivot)
	axis := p.Axis.Vec()
	off = off.Sub(axis.Mul(off.Dot(axis)))
	r := off.Len()
	if r < dirEpsilon {
		return configErrorf("Pivot radius would be zero; set Radius explicitly")
	}
	p.Radius = r
	return nil
}

// SpringParams tethers the owner to the target with a damped spring of the
// given rest length. Velocity is the descriptor's mutable integration
// state, advanced by a semi-implicit Euler step each tick. Without a target
// the descriptor is a no-op.
type SpringParams struct {
	RestLength float64
	Stiffness  float64
	Damping    float64

	Velocity mgl64.Vec3 // mutable state
}

func (p *SpringParams) Kind() ConstraintKind { return Spring }

func (p *SpringParams) validate() error {
	if p.RestLength < 0 || p.Stiffness < 0 || p.Damping < 0 {
		return configErrorf("Spring parameters must be non-negative")
	}
	return nil
}

// FloorParams clamps the owner's height to FloorHeight+Offset. When
// BounceAmount > 0 and Velocity points downward through the floor, the
// vertical velocity is reflected and scaled by BounceAmount. Velocity may
// be written externally for kinematic setups.
type FloorParams struct {
	FloorHeight  float64
	Offset       float64
	BounceAmount float64

	Velocity mgl64.Vec3
}

func (p *FloorParams) Kind() ConstraintKind { return Floor }

func (p *FloorParams) validate() error {
	if p.BounceAmount < 0 {
		return configErrorf("Floor bounce amount %g is negative", p.BounceAmount)
	}
	return nil
}

// PathFollowParams moves the owner along an ordered point sequence.
// Distance is the normalized position along the whole path in [0, 1]; with
// Loop set it wraps, otherwise it clamps at the ends. AlignToPath orients
// the owner's local -Z along the path tangent; otherwise, when both
// endpoints of the current segment carry rotations, the owner's rotation is
// interpolated between them. The point slice is owned by the caller and
// read-only here.
type PathFollowParams struct {
	Points      []PathPoint
	Distance    float64
	Loop        bool
	AlignToPath bool
}

func (p *PathFollowParams) Kind() ConstraintKind { return PathFollow }

func (p *PathFollowParams) validate() error {
	if len(p.Points) < 2 {
		return configErrorf("PathFollow needs at least two points, got %d", len(p.Points))
	}
	return nil
}
