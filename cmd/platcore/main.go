package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/platcore/internal/config"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	"github.com/l1jgo/platcore/internal/data"
	"github.com/l1jgo/platcore/internal/input"
	"github.com/l1jgo/platcore/internal/persist"
	"github.com/l1jgo/platcore/internal/physics"
	"github.com/l1jgo/platcore/internal/scripting"
	"github.com/l1jgo/platcore/internal/sim"
	"github.com/l1jgo/platcore/internal/system"
	"github.com/l1jgo/platcore/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             platcore  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        2D platformer simulation core      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/platcore.toml"
	if p := os.Getenv("PLATCORE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Optional profiling for the lifetime of run()
	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	printBanner()

	// 4. Scripts and scene
	printSection("Data")

	luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua scripts loaded")

	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	world := ecs.NewWorld(cfg.World.MaxEntities)
	rng := rand.New(rand.NewPCG(cfg.Scene.Seed, cfg.Scene.Seed))
	spawned, err := scene.Spawn(world, data.AssetNames{}, rng)
	if err != nil {
		return fmt.Errorf("spawn scene: %w", err)
	}
	printStat("Scene entities", world.Pool().Living())
	if !spawned.HasPlayer {
		log.Warn("scene has no player; camera and checkpoints disabled", zap.String("scene", cfg.Scene.Path))
	}
	fmt.Println()

	// 5. Frame pipeline
	bus := event.NewBus()
	subscribeAudio(bus, log)

	bounds := physics.Bounds{Width: cfg.World.Width, Height: cfg.World.Height, Margin: cfg.World.EdgeMargin}
	pipeline, err := system.NewPipeline(&system.Deps{
		World:    world,
		Bus:      bus,
		Input:    input.Idle{},
		Formulas: luaEngine,
		Rand:     rng,
		Physics:  physics.Params{Gravity: cfg.Physics.Gravity, MaxFallSpeed: cfg.Physics.MaxFallSpeed},
		Bounds:   bounds,
		Log:      log,
	})
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 6. Optional checkpoints
	var checkpoints *sim.Checkpointer
	if cfg.Database.Enabled && spawned.HasPlayer {
		printSection("Database")
		cp, closeDB, err := openCheckpoints(ctx, cfg.Database, world, spawned.Player, scene, log)
		if err != nil {
			return err
		}
		defer closeDB()
		checkpoints = cp
		fmt.Println()
	}

	driver := sim.NewDriver(sim.DriverConfig{
		Runner:          pipeline.Runner,
		World:           world,
		Player:          spawned.Player,
		HasPlayer:       spawned.HasPlayer,
		Camera:          view.NewCamera(cfg.View.Width, cfg.View.Height),
		HUD:             view.NewHUD(cfg.View.Language, 200),
		WorldWidth:      cfg.World.Width,
		WorldHeight:     cfg.World.Height,
		Interval:        cfg.Frame.Interval(),
		MaxDelta:        cfg.Frame.MaxDelta,
		MaxFrames:       cfg.Frame.MaxFrames,
		CheckpointEvery: cfg.Frame.CheckpointEvery,
		Checkpoints:     checkpoints,
		Log:             log,
	})

	// 7. Frame loop
	printSection("Running")
	printReady(fmt.Sprintf("%d systems, %d fps, max delta %s", pipeline.Runner.Len(), cfg.Frame.FPS, cfg.Frame.MaxDelta))
	fmt.Println()

	start := time.Now()
	if err := driver.Run(ctx); err != nil {
		log.Error("simulation aborted", zap.Uint64("frame", driver.Frames()), zap.Error(err))
		return err
	}
	log.Info("simulation stopped",
		zap.Uint64("frames", driver.Frames()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("entities", world.Pool().Living()))
	return nil
}

func openCheckpoints(ctx context.Context, cfg config.DatabaseConfig, world *ecs.World, player ecs.EntityID, scene *data.Scene, log *zap.Logger) (*sim.Checkpointer, func(), error) {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(dbCtx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL connected")

	if err := persist.RunMigrations(dbCtx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK("Migrations applied")

	cp := sim.NewCheckpointer(persist.NewCheckpointRepo(db), world, player, "player", scene.Checksum, log)
	restored, err := cp.Restore(dbCtx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("restore checkpoint: %w", err)
	}
	if restored {
		printOK("Checkpoint restored")
	}
	return cp, db.Close, nil
}

// subscribeAudio stands in for the audio collaborator: it logs the events a
// sound layer would react to.
func subscribeAudio(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.Jumped) {
		log.Debug("jump", zap.Uint32("entity", uint32(e.Entity)))
	})
	event.Subscribe(bus, func(e event.HealthChanged) {
		log.Info("health changed",
			zap.Uint32("entity", uint32(e.Entity)),
			zap.Int("hp", e.Current),
			zap.Int("max_hp", e.Max))
	})
	event.Subscribe(bus, func(e event.HealthDepleted) {
		log.Warn("player defeated", zap.Uint32("entity", uint32(e.Entity)))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
