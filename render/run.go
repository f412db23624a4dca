package render

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	fungeon "github.com/mschutzner/fungeon-sub000"
)

// RunConfig configures the Run game loop.
type RunConfig struct {
	Title  string
	Width  int // window width in pixels (default 640)
	Height int // window height in pixels (default 480)
	TPS    int // fixed ticks per second (default 60)
}

type game struct {
	sched *fungeon.Scheduler
	root  *Node
	last  time.Time
}

func (g *game) Update() error {
	g.sched.Advance(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > 0.25 {
		dt = 0.25
	}
	g.sched.Render(dt)
	g.root.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scheduler until the window closes:
// fixed ticks from ebiten's update callback, the render pass plus node
// drawing from the draw callback. Blocks until exit.
func Run(sched *fungeon.Scheduler, root *Node, cfg RunConfig) error {
	if sched == nil || root == nil {
		panic("render: Run needs a scheduler and a root node")
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(&game{sched: sched, root: root, last: time.Now()})
}
