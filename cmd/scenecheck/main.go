// scenecheck validates a scene file, simulates it headless for a number of
// frames and writes the resting positions of its named entities as YAML,
// along with where each lands in a camera following the player.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/platcore/internal/component"
	"github.com/l1jgo/platcore/internal/config"
	"github.com/l1jgo/platcore/internal/core/ecs"
	"github.com/l1jgo/platcore/internal/core/event"
	"github.com/l1jgo/platcore/internal/data"
	"github.com/l1jgo/platcore/internal/input"
	"github.com/l1jgo/platcore/internal/physics"
	"github.com/l1jgo/platcore/internal/scripting"
	"github.com/l1jgo/platcore/internal/system"
	"github.com/l1jgo/platcore/internal/view"
)

type Report struct {
	Scene    string         `yaml:"scene"`
	Checksum string         `yaml:"checksum"`
	Frames   int            `yaml:"frames"`
	Declared int            `yaml:"declared"`
	Entities int            `yaml:"entities"`
	Named    []EntityReport `yaml:"named"`
}

type EntityReport struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	OnScreen bool    `yaml:"on_screen"`
	ScreenX  int     `yaml:"screen_x,omitempty"`
	ScreenY  int     `yaml:"screen_y,omitempty"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: scenecheck <scene.yaml> <output.yaml> [frames]")
		os.Exit(1)
	}
	frames := 300
	if len(os.Args) > 3 {
		n, err := strconv.Atoi(os.Args[3])
		if err != nil || n < 0 {
			fmt.Fprintf(os.Stderr, "bad frame count %q\n", os.Args[3])
			os.Exit(1)
		}
		frames = n
	}

	report, err := check(os.Args[1], frames)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(os.Args[2], out, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Checked %s: %d entities after %d frames → %s\n", os.Args[1], report.Entities, frames, os.Args[2])
}

func check(path string, frames int) (*Report, error) {
	cfg := config.Default()
	scene, err := data.LoadScene(path)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld(cfg.World.MaxEntities)
	rng := rand.New(rand.NewPCG(cfg.Scene.Seed, cfg.Scene.Seed))
	spawned, err := scene.Spawn(world, data.AssetNames{}, rng)
	if err != nil {
		return nil, err
	}

	pipeline, err := system.NewPipeline(&system.Deps{
		World:    world,
		Bus:      event.NewBus(),
		Input:    input.Idle{},
		Formulas: scripting.NewEmptyEngine(zap.NewNop()),
		Rand:     rng,
		Physics:  physics.Params{Gravity: cfg.Physics.Gravity, MaxFallSpeed: cfg.Physics.MaxFallSpeed},
		Bounds:   physics.Bounds{Width: cfg.World.Width, Height: cfg.World.Height, Margin: cfg.World.EdgeMargin},
		Log:      zap.NewNop(),
	})
	if err != nil {
		return nil, err
	}

	dt := cfg.Frame.Interval()
	for i := 0; i < frames; i++ {
		if err := pipeline.Runner.Tick(min(dt, cfg.Frame.MaxDelta)); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i+1, err)
		}
	}

	report := &Report{
		Scene:    path,
		Checksum: scene.ChecksumHex(),
		Frames:   frames,
		Declared: scene.Count(),
		Entities: world.Pool().Living(),
	}

	camera := view.NewCamera(cfg.View.Width, cfg.View.Height)
	if spawned.HasPlayer {
		if t, ok := ecs.GetComponent[component.Transform](world, spawned.Player); ok {
			camera.Follow(t.X, t.Y, cfg.World.Width, cfg.World.Height)
		}
	}
	for name, id := range spawned.ByName {
		t, ok := ecs.GetComponent[component.Transform](world, id)
		if !ok || !world.Alive(id) {
			continue
		}
		e := EntityReport{Name: name, X: t.X, Y: t.Y}
		var w, h float64
		if c, ok := ecs.GetComponent[component.Collider](world, id); ok {
			w, h = c.Width, c.Height
		}
		if camera.Visible(t.X, t.Y, w, h) {
			e.OnScreen = true
			e.ScreenX, e.ScreenY = camera.ToScreen(t.X, t.Y)
		}
		report.Named = append(report.Named, e)
	}
	sort.Slice(report.Named, func(i, j int) bool {
		return report.Named[i].Name < report.Named[j].Name
	})
	return report, nil
}

