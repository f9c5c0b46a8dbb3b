package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/marquee/internal/config"
	"github.com/plus3/marquee/internal/logging"
	"github.com/plus3/marquee/selection"
	"github.com/plus3/marquee/selection/ebitenselect"
	"github.com/plus3/marquee/selection/ecsselect"
	"github.com/plus3/marquee/selection/gesture"
	"github.com/plus3/marquee/selection/inspector"
)

var (
	configFlag = flag.String("config", "", "path to a YAML config file")
	levelFlag  = flag.String("log-level", "", "log level name, overrides the config")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *levelFlag != "" {
		cfg.Log.Level = *levelFlag
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, closer := logging.New(cfg.Log, level, os.Stderr)
	defer closer.Close()

	ui := ebitenbackend.NewEbitenBackend()
	ui.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	imgui.CurrentIO().SetIniFilename("")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	registry := ecs.NewComponentRegistry()
	ecsselect.Register(registry)
	ecs.RegisterComponent[Unit](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[ImguiItem](registry)

	storage := ecs.NewStorage(registry)
	populate(storage, cfg.Demo)

	camera := &ecsselect.Camera{Zoom: cfg.Camera.Zoom, CellSize: cfg.Camera.CellSize}
	host := ecsselect.NewHost(storage, camera)
	input := ebitenselect.NewInput()
	engine := ecsselect.NewEngine(host, input.Additive, selection.WithLogger(logger))

	controller := gesture.NewController(engine)
	controller.DeadZone = cfg.Input.DeadZone
	controller.ClickTolerance = cfg.Input.ClickTolerance

	overlay := ebitenselect.NewOverlay()
	ebitenselect.Track(overlay, engine)

	units := ecs.NewView[struct{ *Unit }](storage)
	window := inspector.NewWindow(engine, func(id ecs.EntityId) string {
		if u := units.Get(id); u != nil {
			return u.Unit.Name
		}
		return fmt.Sprintf("#%x", uint64(id))
	}, 120)
	storage.Spawn(ImguiItem{Render: window.Render})

	engine.OnSelected(func(id ecs.EntityId) {
		logger.Info("unit selected", "entity", id)
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&WanderSystem{
		Units: ecs.NewView[wanderView](storage),
		World: cfg.Demo,
	})
	scheduler.Register(&CameraSystem{Camera: camera})
	scheduler.Register(&ecsselect.SelectionSystem{
		Host:       host,
		Controller: controller,
		Source:     input,
		Suspended: func() bool {
			return imgui.CurrentIO().WantCaptureMouse()
		},
	})
	scheduler.Register(&CommandSystem{
		Engine: engine,
		Units:  ecs.NewView[struct{ *ecsselect.Selectable }](storage),
	})

	game := &Game{
		scheduler: scheduler,
		ui:        ui,
		items:     ecs.NewView[imguiView](storage),
		render: &Renderer{
			Units:   ecs.NewView[renderView](storage),
			Camera:  camera,
			Overlay: overlay,
			World:   cfg.Demo,
		},
	}

	logger.Info("demo started", "units", cfg.Demo.Units, "seed", cfg.Demo.Seed)
	return ebiten.RunGame(game)
}

func populate(storage *ecs.Storage, world config.Demo) {
	rng := rand.New(rand.NewPCG(uint64(world.Seed), uint64(world.Seed)))

	for i := range world.Units {
		storage.Spawn(
			ecsselect.Position{
				X: rng.Float32() * float32(world.WorldWidth),
				Y: rng.Float32() * float32(world.WorldHeight),
			},
			ecsselect.Selectable{},
			Unit{
				Name:  fmt.Sprintf("unit-%03d", i),
				Color: palette[i%len(palette)],
			},
			Velocity{
				DX: (rng.Float32() - 0.5) * 0.6,
				DY: (rng.Float32() - 0.5) * 0.6,
			},
		)
	}
}
