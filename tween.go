package fungeon

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenChannel selects which Transform channel a TweenGroup writes.
type tweenChannel uint8

const (
	tweenPosition tweenChannel = iota
	tweenRotation
	tweenScale
)

// TweenGroup animates one channel of an entity's Transform toward a target
// value over a fixed duration. Groups resolve their entity through the
// World every step, so a destroyed entity simply finishes the group instead
// of writing through a stale pointer.
//
// Tweens are cosmetic animation clips: drive them from the render pass via
// TweenSystem (or call Step yourself). The constraint system reads whatever
// the tween last wrote, the same as any other external transform edit.
type TweenGroup struct {
	target  Entity
	channel tweenChannel
	tweens  [3]*gween.Tween
	Done    bool
}

// TweenPosition animates the entity's position from its current value to
// `to` over duration seconds using the easing function.
func TweenPosition(w *World, e Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(w, e, tweenPosition, to, duration, fn)
}

// TweenRotation animates the entity's Euler rotation (degrees) to `to`.
func TweenRotation(w *World, e Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(w, e, tweenRotation, to, duration, fn)
}

// TweenScale animates the entity's scale to `to`.
func TweenScale(w *World, e Entity, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(w, e, tweenScale, to, duration, fn)
}

func newTweenGroup(w *World, e Entity, ch tweenChannel, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e, channel: ch}
	t := Get[Transform](w, e)
	if t == nil {
		g.Done = true
		return g
	}
	from := g.read(t)
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

func (g *TweenGroup) read(t *Transform) mgl64.Vec3 {
	switch g.channel {
	case tweenRotation:
		return t.Rotation
	case tweenScale:
		return t.Scale
	}
	return t.Position
}

func (g *TweenGroup) write(t *Transform, v mgl64.Vec3) {
	switch g.channel {
	case tweenRotation:
		t.Rotation = v
	case tweenScale:
		t.Scale = v
	default:
		t.Position = v
	}
}

// Step advances the group by dt seconds and writes the current value to the
// entity's Transform. Finishes immediately if the entity or its Transform
// is gone.
func (g *TweenGroup) Step(w *World, dt float64) {
	if g.Done {
		return
	}
	t := Get[Transform](w, g.target)
	if t == nil {
		g.Done = true
		return
	}

	var v mgl64.Vec3
	allDone := true
	for i := 0; i < 3; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.write(t, v)
	g.Done = allDone
}

// TweenSystem advances registered TweenGroups during the render pass and
// drops finished ones. Its fixed-tick Update is a no-op — tweens are visual
// interpolation, never simulation input.
type TweenSystem struct {
	groups []*TweenGroup
}

// NewTweenSystem creates an empty tween system.
func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

// Start registers a group to be advanced each render pass.
func (s *TweenSystem) Start(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.groups = append(s.groups, g)
}

// Len returns the number of active groups.
func (s *TweenSystem) Len() int {
	return len(s.groups)
}

// Update is a no-op; TweenSystem only participates in the render pass.
func (s *TweenSystem) Update(w *World, dt float64) {}

// Render advances all active groups by the frame delta.
func (s *TweenSystem) Render(w *World, dt float64) {
	kept := s.groups[:0]
	for _, g := range s.groups {
		g.Step(w, dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(s.groups); i++ {
		s.groups[i] = nil
	}
	s.groups = kept
}
