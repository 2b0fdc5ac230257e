package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Fallback amounts when a formula is missing or fails.
const (
	DefaultDamage = 10
	DefaultHeal   = 10
)

// MaxAmount caps a formula result. Scripts may return math.huge to mean
// "everything".
const MaxAmount = math.MaxInt32

// HealthContext is the data handed to the health formulas.
type HealthContext struct {
	Entity  uint32
	Current int
	Max     int
}

// Engine wraps a single gopher-lua VM holding the tunable game formulas.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under dir. A missing
// directory leaves the engine empty so every formula uses its fallback.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)

	// Load core scripts first, then gameplay overrides
	for _, sub := range []string{"core", "gameplay"} {
		if err := e.loadDir(filepath.Join(dir, sub)); err != nil {
			e.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEmptyEngine returns an engine with no scripts loaded.
func NewEmptyEngine(log *zap.Logger) *Engine {
	return newEngine(log)
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load lua chunk: %w", err)
	}
	return nil
}

// Damage calls calc_damage(ctx) and returns the hit points to remove.
func (e *Engine) Damage(ctx HealthContext) int {
	return e.callHealthFunc("calc_damage", ctx, DefaultDamage)
}

// Heal calls calc_heal(ctx) and returns the hit points to restore.
func (e *Engine) Heal(ctx HealthContext) int {
	return e.callHealthFunc("calc_heal", ctx, DefaultHeal)
}

func (e *Engine) callHealthFunc(name string, ctx HealthContext, fallback int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Debug("lua function not found, using fallback", zap.String("name", name))
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("entity", lua.LNumber(ctx.Entity))
	t.RawSetString("current", lua.LNumber(ctx.Current))
	t.RawSetString("max", lua.LNumber(ctx.Max))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return fallback
	}
	f := float64(n)
	if math.IsNaN(f) {
		e.log.Error("lua function returned NaN", zap.String("func", name))
		return fallback
	}
	return int(min(max(f, 0), MaxAmount))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
