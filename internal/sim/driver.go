// Package sim drives the frame pipeline: one clamped tick per frame, then
// the per-frame bookkeeping that lives outside the systems (FPS, camera,
// HUD and checkpoints).
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	coresys "github.com/l1jgo/platcore/internal/core/system"
	"github.com/l1jgo/platcore/internal/view"
)

const finalSaveTimeout = 5 * time.Second

// DriverConfig wires a Driver.
type DriverConfig struct {
	Runner      *coresys.Runner
	World       *ecs.World
	Player      ecs.EntityID
	HasPlayer   bool
	Camera      view.Camera
	HUD         *view.HUD
	WorldWidth  float64
	WorldHeight float64

	Interval        time.Duration // wall time between frames
	MaxDelta        time.Duration
	MaxFrames       int // 0 = until ctx is done
	CheckpointEvery int // frames; 0 = only on exit
	Checkpoints     *Checkpointer

	Log *zap.Logger
}

type Driver struct {
	cfg     DriverConfig
	camera  view.Camera
	fps     view.FPSCounter
	overlay view.Overlay
	frames  uint64
	log     *zap.Logger
}

func NewDriver(cfg DriverConfig) *Driver {
	return &Driver{cfg: cfg, camera: cfg.Camera, log: cfg.Log}
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 { return d.frames }

func (d *Driver) Camera() view.Camera { return d.camera }

func (d *Driver) Overlay() view.Overlay { return d.overlay }

// ClampDelta bounds a measured frame time to [0, limit].
func ClampDelta(dt, limit time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if dt > limit {
		return limit
	}
	return dt
}

// Step runs exactly one frame. Any system error is returned unchanged in
// meaning; the caller should stop the simulation.
func (d *Driver) Step(ctx context.Context, dt time.Duration) error {
	dt = ClampDelta(dt, d.cfg.MaxDelta)
	if err := d.cfg.Runner.Tick(dt); err != nil {
		return fmt.Errorf("frame %d: %w", d.frames+1, err)
	}
	d.frames++
	d.fps.Tick(dt.Seconds())
	d.updateView()

	if d.cfg.Checkpoints != nil && d.cfg.CheckpointEvery > 0 && d.frames%uint64(d.cfg.CheckpointEvery) == 0 {
		if err := d.cfg.Checkpoints.Save(ctx, d.frames); err != nil {
			d.log.Error("checkpoint failed", zap.Uint64("frame", d.frames), zap.Error(err))
		}
	}
	return nil
}

// Run steps frames on a ticker until ctx is done or MaxFrames is reached,
// then writes a final checkpoint.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.log.Info("simulation stopping", zap.Uint64("frames", d.frames))
			d.finalCheckpoint(ctx)
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := d.Step(ctx, dt); err != nil {
				return err
			}
			if d.cfg.MaxFrames > 0 && d.frames >= uint64(d.cfg.MaxFrames) {
				d.log.Info("frame limit reached", zap.Uint64("frames", d.frames))
				d.finalCheckpoint(ctx)
				return nil
			}
		}
	}
}

func (d *Driver) finalCheckpoint(ctx context.Context) {
	if d.cfg.Checkpoints == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalSaveTimeout)
	defer cancel()
	if err := d.cfg.Checkpoints.Save(saveCtx, d.frames); err != nil {
		d.log.Error("final checkpoint failed", zap.Error(err))
	}
}

func (d *Driver) updateView() {
	if !d.cfg.HasPlayer || !d.cfg.World.Alive(d.cfg.Player) {
		return
	}
	t, ok := ecs.GetComponent[component.Transform](d.cfg.World, d.cfg.Player)
	if !ok {
		return
	}
	cx, cy := t.X, t.Y
	if c, ok := ecs.GetComponent[component.Collider](d.cfg.World, d.cfg.Player); ok {
		cx += c.OffsetX + c.Width/2
		cy += c.OffsetY + c.Height/2
	}
	d.camera.Follow(cx, cy, d.cfg.WorldWidth, d.cfg.WorldHeight)

	if d.cfg.HUD == nil {
		return
	}
	var hp, maxHP int
	if h, ok := ecs.GetComponent[component.Health](d.cfg.World, d.cfg.Player); ok {
		hp, maxHP = h.Current, h.Max
	}
	d.overlay = d.cfg.HUD.Build(hp, maxHP, d.fps.FPS(), t.X, t.Y)
}
