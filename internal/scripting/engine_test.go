package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFallbacksWithoutScripts(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()

	ctx := HealthContext{Current: 50, Max: 100}
	assert.Equal(t, DefaultDamage, e.Damage(ctx))
	assert.Equal(t, DefaultHeal, e.Heal(ctx))
}

func TestScriptedFormulas(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()

	require.NoError(t, e.LoadString(`
function calc_damage(ctx)
  return math.floor(ctx.max / 4)
end
function calc_heal(ctx)
  return ctx.max - ctx.current
end
`))
	ctx := HealthContext{Entity: 3, Current: 70, Max: 100}
	assert.Equal(t, 25, e.Damage(ctx))
	assert.Equal(t, 30, e.Heal(ctx))
}

func TestBrokenFormulaFallsBack(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()

	require.NoError(t, e.LoadString(`
function calc_damage(ctx) error("boom") end
function calc_heal(ctx) return "lots" end
`))
	ctx := HealthContext{Current: 1, Max: 1}
	assert.Equal(t, DefaultDamage, e.Damage(ctx))
	assert.Equal(t, DefaultHeal, e.Heal(ctx))
}

func TestNegativeAmountIsZero(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()
	require.NoError(t, e.LoadString(`function calc_damage(ctx) return -5 end`))
	assert.Equal(t, 0, e.Damage(HealthContext{}))
}

func TestAmountsAreBounded(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()
	require.NoError(t, e.LoadString(`
function calc_heal(ctx) return math.huge end
function calc_damage(ctx) return 0/0 end
`))
	assert.Equal(t, MaxAmount, e.Heal(HealthContext{Current: 40, Max: 100}))
	assert.Equal(t, DefaultDamage, e.Damage(HealthContext{}))

	require.NoError(t, e.LoadString(`function calc_heal(ctx) return -math.huge end`))
	assert.Equal(t, 0, e.Heal(HealthContext{}))
}

func TestLoadStringSyntaxError(t *testing.T) {
	e := NewEmptyEngine(zap.NewNop())
	defer e.Close()
	assert.Error(t, e.LoadString(`function (`))
}

func TestNewEngineLoadsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gameplay"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "health.lua"),
		[]byte(`function calc_damage(ctx) return 7 end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gameplay", "override.lua"),
		[]byte(`function calc_damage(ctx) return 9 end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "notes.txt"),
		[]byte(`not lua`), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, 9, e.Damage(HealthContext{}))
}

func TestNewEngineMissingDirectory(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, DefaultHeal, e.Heal(HealthContext{}))
}

func TestNewEngineReportsBadScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "bad.lua"), []byte(`this is not lua`), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
