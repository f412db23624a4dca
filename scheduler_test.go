package fungeon

import "testing"

// recorder logs the order its passes run in, shared across systems via log.
type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) Update(w *World, dt float64) {
	*r.log = append(*r.log, r.name)
}

// renderRecorder additionally participates in the render pass.
type renderRecorder struct {
	recorder
	renders int
	lastDt  float64
}

func (r *renderRecorder) Render(w *World, dt float64) {
	r.renders++
	r.lastDt = dt
}

func TestSchedulerRunsByPriority(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	s.Add(&recorder{"mid", &log}, 1)
	s.Add(&recorder{"last", &log}, -5)
	s.Add(&recorder{"first", &log}, 10)

	s.StepOnce()
	want := []string{"first", "mid", "last"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
}

func TestSchedulerPriorityTiesByRegistration(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	s.Add(&recorder{"a", &log}, 0)
	s.Add(&recorder{"b", &log}, 0)

	s.StepOnce()
	if log[0] != "a" || log[1] != "b" {
		t.Errorf("order = %v, want registration order", log)
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.25)
	s.Add(&recorder{"tick", &log}, 0)

	if got := s.Advance(0.625); got != 2 {
		t.Fatalf("Advance(0.625) = %d ticks, want 2", got)
	}
	// 0.125 carried over plus 0.125 crosses the step boundary.
	if got := s.Advance(0.125); got != 1 {
		t.Fatalf("Advance(0.125) = %d ticks, want 1", got)
	}
	if len(log) != 3 {
		t.Errorf("total ticks = %d, want 3", len(log))
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.25)
	s.Add(&recorder{"tick", &log}, 0)

	// A sixty-second stall must not replay sixty seconds of simulation.
	if got := s.Advance(60); got != maxCatchUpTicks {
		t.Errorf("Advance(60) = %d ticks, want %d", got, maxCatchUpTicks)
	}
}

func TestAdvanceIgnoresNonPositiveElapsed(t *testing.T) {
	s := NewScheduler(NewWorld(), 0.02)
	if got := s.Advance(-1); got != 0 {
		t.Errorf("Advance(-1) = %d ticks, want 0", got)
	}
	if got := s.Advance(0); got != 0 {
		t.Errorf("Advance(0) = %d ticks, want 0", got)
	}
}

func TestSetEnabledSkipsSystem(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	sys := &recorder{"tick", &log}
	s.Add(sys, 0)

	if !s.SetEnabled(sys, false) {
		t.Fatal("SetEnabled did not find the system")
	}
	s.StepOnce()
	if len(log) != 0 {
		t.Error("disabled system still ran")
	}

	s.SetEnabled(sys, true)
	s.StepOnce()
	if len(log) != 1 {
		t.Error("re-enabled system did not run")
	}
}

func TestSetEnabledUnknownSystem(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	if s.SetEnabled(&recorder{"ghost", &log}, false) {
		t.Error("SetEnabled reported an unregistered system as found")
	}
}

func TestRenderPassOnlyHitsRenderSystems(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	plain := &recorder{"plain", &log}
	drawn := &renderRecorder{recorder: recorder{"drawn", &log}}
	s.Add(plain, 0)
	s.Add(drawn, -1)

	s.Render(0.016)
	if drawn.renders != 1 {
		t.Errorf("render system ran %d times, want 1", drawn.renders)
	}
	assertNear(t, "render dt", drawn.lastDt, 0.016)
	if len(log) != 0 {
		t.Error("render pass invoked Update on a plain system")
	}
}

func TestDuplicateSystemPanics(t *testing.T) {
	var log []string
	s := NewScheduler(NewWorld(), 0.02)
	sys := &recorder{"once", &log}
	s.Add(sys, 0)
	defer func() {
		if recover() == nil {
			t.Error("duplicate Add did not panic")
		}
	}()
	s.Add(sys, 1)
}

func TestNonPositiveStepPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("zero step did not panic")
		}
	}()
	NewScheduler(NewWorld(), 0)
}

func TestTimeStepAndWorldAccessors(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(w, 1.0/30.0)
	if s.World() != w {
		t.Error("World accessor returned a different world")
	}
	assertNear(t, "step", s.TimeStep(), 1.0/30.0)
}
