// Package stress drives a selection engine over a large ECS world with random drag
// and click gestures and reports how it performed.
package stress

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/plus3/ooftn/ecs"

	"github.com/plus3/marquee/selection"
	"github.com/plus3/marquee/selection/ecsselect"
	"github.com/plus3/marquee/selection/gesture"
)

const (
	worldSize  = 100
	cellSize   = 10
	screenSize = worldSize * cellSize
	holdFrames = 4

	// one gesture in additiveOneIn holds the modifier
	additiveOneIn = 4
)

// Config controls a stress run.
type Config struct {
	Entities       int
	Duration       time.Duration
	Seed           int64
	DeadZone       float64
	ClickTolerance float64
	GCPauseMetrics bool
	Logger         *slog.Logger
}

// Run populates a world with cfg.Entities selectable units and performs gestures
// until cfg.Duration elapses or ctx is done.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Entities < 0 {
		return nil, fmt.Errorf("entity count cannot be negative, got %d", cfg.Entities)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %s", cfg.Duration)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))

	registry := ecs.NewComponentRegistry()
	ecsselect.Register(registry)
	storage := ecs.NewStorage(registry)

	logger.Info("populating storage", "entities", cfg.Entities)
	for range cfg.Entities {
		storage.Spawn(
			ecsselect.Position{X: rng.Float32() * worldSize, Y: rng.Float32() * worldSize},
			ecsselect.Selectable{},
		)
	}

	additive := false
	host := ecsselect.NewHost(storage, ecsselect.NewCamera(cellSize))
	engine := ecsselect.NewEngine(host, func() bool { return additive }, selection.WithLogger(logger))
	controller := gesture.NewController(engine)
	controller.DeadZone = cfg.DeadZone
	controller.ClickTolerance = cfg.ClickTolerance

	report := &Report{
		Duration:       cfg.Duration,
		Entities:       cfg.Entities,
		Seed:           cfg.Seed,
		GCPauseMetrics: cfg.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	logger.Info("running gestures", "duration", cfg.Duration)
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			additive = rng.IntN(additiveOneIn) == 0
			from := randomPoint(rng)
			to := randomPoint(rng)

			cycleStart := time.Now()
			frames := gesturePath(from, to)
			for _, p := range frames {
				host.Invalidate()
				controller.Step(p)
			}
			report.CycleTime.Samples = append(report.CycleTime.Samples, time.Since(cycleStart))

			report.Cycles++
			report.Frames += int64(len(frames))
			report.MaxSelection = max(report.MaxSelection, engine.Len())
		}
	}

	report.TotalTime = time.Since(startTime)
	report.CycleTime.Finalize()
	report.Engine = engine.Stats()
	report.CacheRebuilds = host.Rebuilds()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("stress run finished", "cycles", report.Cycles)
	return report, nil
}

func randomPoint(rng *rand.Rand) selection.Point {
	return selection.Pt(rng.Float64()*screenSize, rng.Float64()*screenSize)
}

// gesturePath presses at from, moves toward to over a few frames and releases there.
func gesturePath(from, to selection.Point) []gesture.Pointer {
	frames := make([]gesture.Pointer, 0, holdFrames+2)
	frames = append(frames, gesture.Pointer{Cursor: from, Pressed: true})
	for i := 1; i <= holdFrames; i++ {
		t := float64(i) / holdFrames
		frames = append(frames, gesture.Pointer{
			Cursor: selection.Pt(
				from.X+(to.X-from.X)*t,
				from.Y+(to.Y-from.Y)*t,
			),
			Pressed: true,
		})
	}
	return append(frames, gesture.Pointer{Cursor: to})
}
