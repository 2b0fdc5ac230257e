package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CheckpointRow is the saved state of one named entity.
type CheckpointRow struct {
	Slot     string
	SceneSum []byte
	Frame    int64
	X, Y     float64
	VX, VY   float64
	HP       int32
	MaxHP    int32
	SavedAt  time.Time
}

type CheckpointRepo struct {
	db *DB
}

func NewCheckpointRepo(db *DB) *CheckpointRepo {
	return &CheckpointRepo{db: db}
}

// Load returns the checkpoint in slot, or nil if none was saved.
func (r *CheckpointRepo) Load(ctx context.Context, slot string) (*CheckpointRow, error) {
	var c CheckpointRow
	err := r.db.Pool.QueryRow(ctx,
		`SELECT slot, scene_sum, frame, x, y, vx, vy, hp, max_hp, saved_at
		 FROM checkpoints WHERE slot = $1`, slot,
	).Scan(&c.Slot, &c.SceneSum, &c.Frame, &c.X, &c.Y, &c.VX, &c.VY, &c.HP, &c.MaxHP, &c.SavedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint %q: %w", slot, err)
	}
	return &c, nil
}

// Save upserts the checkpoint for c.Slot.
func (r *CheckpointRepo) Save(ctx context.Context, c *CheckpointRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO checkpoints (slot, scene_sum, frame, x, y, vx, vy, hp, max_hp, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		 ON CONFLICT (slot) DO UPDATE SET
		   scene_sum = EXCLUDED.scene_sum,
		   frame     = EXCLUDED.frame,
		   x         = EXCLUDED.x,
		   y         = EXCLUDED.y,
		   vx        = EXCLUDED.vx,
		   vy        = EXCLUDED.vy,
		   hp        = EXCLUDED.hp,
		   max_hp    = EXCLUDED.max_hp,
		   saved_at  = now()`,
		c.Slot, c.SceneSum, c.Frame, c.X, c.Y, c.VX, c.VY, c.HP, c.MaxHP,
	)
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", c.Slot, err)
	}
	return nil
}
