package persist

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/platcore/internal/config"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		body, err := fs.ReadFile(migrations, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

// testDB connects to PLATCORE_TEST_DSN; the test is skipped when unset.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("PLATCORE_TEST_DSN")
	if dsn == "" {
		t.Skip("PLATCORE_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, RunMigrations(ctx, db))
	return db
}

func TestCheckpointRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewCheckpointRepo(db)
	ctx := context.Background()
	slot := "test-" + strings.ReplaceAll(t.Name(), "/", "-")
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(ctx, `DELETE FROM checkpoints WHERE slot = $1`, slot)
	})

	got, err := repo.Load(ctx, slot)
	require.NoError(t, err)
	assert.Nil(t, got)

	row := &CheckpointRow{Slot: slot, SceneSum: []byte{1, 2, 3}, Frame: 600, X: 12.5, Y: 40, VX: -3, HP: 70, MaxHP: 100}
	require.NoError(t, repo.Save(ctx, row))
	row.Frame, row.HP = 1200, 55
	require.NoError(t, repo.Save(ctx, row))

	got, err = repo.Load(ctx, slot)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1200), got.Frame)
	assert.Equal(t, int32(55), got.HP)
	assert.Equal(t, 12.5, got.X)
	assert.Equal(t, []byte{1, 2, 3}, got.SceneSum)
	assert.False(t, got.SavedAt.IsZero())
}
