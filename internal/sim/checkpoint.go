package sim

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/persist"
)

// CheckpointStore persists checkpoint rows. *persist.CheckpointRepo
// implements it.
type CheckpointStore interface {
	Load(ctx context.Context, slot string) (*persist.CheckpointRow, error)
	Save(ctx context.Context, row *persist.CheckpointRow) error
}

// Checkpointer saves and restores one entity's motion and health. A saved
// row only restores onto the scene it was taken from.
type Checkpointer struct {
	store    CheckpointStore
	world    *ecs.World
	entity   ecs.EntityID
	slot     string
	sceneSum [32]byte
	log      *zap.Logger
}

func NewCheckpointer(store CheckpointStore, world *ecs.World, entity ecs.EntityID, slot string, sceneSum [32]byte, log *zap.Logger) *Checkpointer {
	return &Checkpointer{
		store:    store,
		world:    world,
		entity:   entity,
		slot:     slot,
		sceneSum: sceneSum,
		log:      log,
	}
}

// Restore applies the saved checkpoint, if any. It reports whether state
// was restored; a checkpoint from a different scene is ignored.
func (c *Checkpointer) Restore(ctx context.Context) (bool, error) {
	row, err := c.store.Load(ctx, c.slot)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, nil
	}
	if !bytes.Equal(row.SceneSum, c.sceneSum[:]) {
		c.log.Warn("checkpoint belongs to another scene, ignoring",
			zap.String("slot", c.slot), zap.Int64("frame", row.Frame))
		return false, nil
	}
	if !c.world.Alive(c.entity) {
		return false, fmt.Errorf("restore %q: entity %d is not alive", c.slot, c.entity)
	}

	if t, ok := ecs.GetComponent[component.Transform](c.world, c.entity); ok {
		t.X, t.Y = row.X, row.Y
	}
	if v, ok := ecs.GetComponent[component.Velocity](c.world, c.entity); ok {
		v.VX, v.VY = row.VX, row.VY
	}
	if h, ok := ecs.GetComponent[component.Health](c.world, c.entity); ok && row.MaxHP > 0 {
		h.Max = int(row.MaxHP)
		h.Current = min(max(int(row.HP), 0), h.Max)
	}
	c.log.Info("checkpoint restored",
		zap.String("slot", c.slot),
		zap.Int64("frame", row.Frame),
		zap.Float64("x", row.X),
		zap.Float64("y", row.Y))
	return true, nil
}

// Save writes the entity's current state. A dead entity is skipped.
func (c *Checkpointer) Save(ctx context.Context, frame uint64) error {
	if !c.world.Alive(c.entity) {
		return nil
	}
	row := &persist.CheckpointRow{
		Slot:     c.slot,
		SceneSum: c.sceneSum[:],
		Frame:    int64(frame),
	}
	if t, ok := ecs.GetComponent[component.Transform](c.world, c.entity); ok {
		row.X, row.Y = t.X, t.Y
	}
	if v, ok := ecs.GetComponent[component.Velocity](c.world, c.entity); ok {
		row.VX, row.VY = v.VX, v.VY
	}
	if h, ok := ecs.GetComponent[component.Health](c.world, c.entity); ok {
		row.HP, row.MaxHP = int32(h.Current), int32(h.Max)
	}
	if err := c.store.Save(ctx, row); err != nil {
		return err
	}
	c.log.Debug("checkpoint saved", zap.String("slot", c.slot), zap.Uint64("frame", frame))
	return nil
}
