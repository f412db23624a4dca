package render

import (
	"math"

	fungeon "github.com/mschutzner/fungeon-sub000"
)

// Projector mirrors entity transforms onto their bound render nodes with an
// orthographic XY projection: world X maps right, world Y maps up, world Z
// is ignored except for being recorded as depth. One world unit spans Scale
// pixels; world origin lands at (CenterX, CenterY).
//
// Projector runs only in the render pass — it reads transforms, never
// writes them.
type Projector struct {
	Sync    *fungeon.SceneSync
	Scale   float64
	CenterX float64
	CenterY float64
}

// NewProjector creates a projector reading node bindings from sync.
// Panics if sync is nil.
func NewProjector(sync *fungeon.SceneSync, scale, centerX, centerY float64) *Projector {
	if sync == nil {
		panic("render: projector needs a scene sync")
	}
	if scale <= 0 {
		scale = 1
	}
	return &Projector{Sync: sync, Scale: scale, CenterX: centerX, CenterY: centerY}
}

// Update is a no-op; projection is purely cosmetic.
func (p *Projector) Update(w *fungeon.World, dt float64) {}

// Render copies each bound entity's transform into its node's screen
// placement.
func (p *Projector) Render(w *fungeon.World, dt float64) {
	fungeon.Each(w, func(e fungeon.Entity, t *fungeon.Transform) {
		bound := p.Sync.NodeOf(e)
		if bound == nil {
			return
		}
		n, ok := bound.(*Node)
		if !ok {
			return
		}
		n.screenX = p.CenterX + t.Position[0]*p.Scale
		n.screenY = p.CenterY - t.Position[1]*p.Scale
		n.scaleX = t.Scale[0]
		n.scaleY = t.Scale[1]
		n.angle = -t.Rotation[2] * math.Pi / 180
		n.depth = t.Position[2]
	})
}
