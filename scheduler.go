package fungeon

import "slices"

// System is a unit of per-tick logic. Update runs once per fixed tick with
// dt equal to the scheduler's step.
type System interface {
	Update(w *World, dt float64)
}

// RenderSystem is implemented by systems that also want the variable-rate
// render pass. Render must stay purely cosmetic: constraint math and
// anything else affecting simulation state belongs in Update, so results
// are identical regardless of display refresh rate.
type RenderSystem interface {
	System
	Render(w *World, dt float64)
}

// maxCatchUpTicks bounds how many fixed ticks a single Advance may run.
// When the host stalls longer than step*maxCatchUpTicks, the excess time is
// dropped instead of spiraling.
const maxCatchUpTicks = 8

type schedEntry struct {
	sys      System
	priority int
	enabled  bool
	seq      int
}

// Scheduler drives registered systems: a fixed-timestep update pass through
// Advance or Step, and a separate render pass through Render. Systems run
// in priority-descending order (higher runs earlier), ties by registration
// order.
type Scheduler struct {
	world   *World
	step    float64
	acc     float64
	entries []schedEntry
	nextSeq int
}

// NewScheduler creates a scheduler over the world with the given fixed
// timestep in seconds. Panics if step is not positive.
func NewScheduler(world *World, step float64) *Scheduler {
	if step <= 0 {
		panic("fungeon: scheduler step must be positive")
	}
	return &Scheduler{world: world, step: step}
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *World {
	return s.world
}

// TimeStep returns the fixed timestep in seconds.
func (s *Scheduler) TimeStep() float64 {
	return s.step
}

// Add registers a system at the given priority. Registering the same
// system twice panics.
func (s *Scheduler) Add(sys System, priority int) {
	if sys == nil {
		panic("fungeon: cannot add nil system")
	}
	for i := range s.entries {
		if s.entries[i].sys == sys {
			panic("fungeon: system already registered")
		}
	}
	s.entries = append(s.entries, schedEntry{
		sys:      sys,
		priority: priority,
		enabled:  true,
		seq:      s.nextSeq,
	})
	s.nextSeq++
	slices.SortStableFunc(s.entries, func(a, b schedEntry) int {
		switch {
		case a.priority > b.priority:
			return -1
		case a.priority < b.priority:
			return 1
		case a.seq < b.seq:
			return -1
		}
		return 1
	})
}

// SetEnabled toggles a registered system in both passes. Reports whether
// the system was found.
func (s *Scheduler) SetEnabled(sys System, enabled bool) bool {
	for i := range s.entries {
		if s.entries[i].sys == sys {
			s.entries[i].enabled = enabled
			return true
		}
	}
	return false
}

// Advance accumulates elapsed seconds and runs zero or more fixed ticks,
// returning how many ran. After Advance returns, every entity's Transform
// is stable until the next tick, which is the renderer's read window.
func (s *Scheduler) Advance(elapsed float64) int {
	if elapsed > 0 {
		s.acc += elapsed
	}
	if limit := s.step * maxCatchUpTicks; s.acc > limit {
		s.acc = limit
	}
	ticks := 0
	for s.acc >= s.step {
		s.acc -= s.step
		s.StepOnce()
		ticks++
	}
	return ticks
}

// StepOnce runs exactly one fixed tick through all enabled systems.
func (s *Scheduler) StepOnce() {
	for i := range s.entries {
		if s.entries[i].enabled {
			s.entries[i].sys.Update(s.world, s.step)
		}
	}
}

// Render runs the variable-rate pass once per displayed frame with the real
// frame delta. Only systems implementing RenderSystem participate.
func (s *Scheduler) Render(dt float64) {
	for i := range s.entries {
		if !s.entries[i].enabled {
			continue
		}
		if rs, ok := s.entries[i].sys.(RenderSystem); ok {
			rs.Render(s.world, dt)
		}
	}
}
