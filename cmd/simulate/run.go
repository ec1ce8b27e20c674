package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/ecs/entity"
	"github.com/milk9111/controller2d/ecs/system"
	"github.com/milk9111/controller2d/physics"
	"github.com/milk9111/controller2d/prefabs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KillY is the height below which a character is sent back to safe ground.
const KillY = -5

var ErrNoTicks = errors.New("simulate: ticks must be positive")

type Options struct {
	Spec   prefabs.ControllerSpec
	Level  prefabs.LevelSpec
	Script string
	Ticks  int
}

// TraceRow is one tick of the character's motion, taken after the physics
// step.
type TraceRow struct {
	Tick     int     `csv:"tick"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	Grounded bool    `csv:"grounded"`
	Events   string  `csv:"events"`
}

// Run simulates a scripted character in the level for opts.Ticks ticks.
func Run(opts Options, log *slog.Logger) ([]TraceRow, error) {
	if opts.Ticks <= 0 {
		return nil, ErrNoTicks
	}
	if log == nil {
		log = slog.Default()
	}
	if _, err := system.CompileIntentScript(opts.Script); err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	pw := physics.NewWorld(opts.Level.GravityVec(), log)
	if _, err := entity.LoadLevel(pw, opts.Level, log); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	player, err := entity.NewScriptedPlayerAt(w, pw, opts.Spec, opts.Level.SpawnPoint(), opts.Script, log)
	if err != nil {
		return nil, err
	}

	rec := &traceRecorder{player: player, rows: make([]TraceRow, 0, opts.Ticks)}
	sched := ecs.NewScheduler(
		system.NewScriptInputSystem(log),
		system.NewCharacterControllerSystem(pw, log),
		system.NewPhysicsSystem(pw, opts.Level.TickRate),
		system.NewRespawnSystem(pw, KillY, log),
		rec,
	)
	for i := 0; i < opts.Ticks; i++ {
		sched.Update(w)
	}
	return rec.rows, nil
}

type traceRecorder struct {
	player ecs.Entity
	tick   int
	rows   []TraceRow
}

func (r *traceRecorder) Update(w *ecs.World) {
	defer func() { r.tick++ }()

	pb, ok := ecs.Get(w, r.player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}
	row := TraceRow{Tick: r.tick}
	p, v := pb.Body.Position(), pb.Body.Velocity()
	row.X, row.Y, row.VX, row.VY = p.X(), p.Y(), v.X(), v.Y()
	if cc, ok := ecs.Get(w, r.player, component.CharacterControllerComponent.Kind()); ok && cc.Controller != nil {
		row.Grounded = cc.Controller.IsGrounded()
	}

	var kinds []string
	for _, evt := range w.Events().Drain() {
		if evt.Entity == r.player {
			kinds = append(kinds, string(evt.Kind))
		}
	}
	row.Events = strings.Join(kinds, ";")
	r.rows = append(r.rows, row)
}

// WriteTrace writes rows as CSV with a header line.
func WriteTrace(w io.Writer, rows []TraceRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Summary aggregates a trace.
type Summary struct {
	Ticks            int
	GroundedFraction float64
	MeanSpeedX       float64
	PeakY            float64
	Jumps            int
	Landings         int
}

// Summarize computes aggregate motion statistics over rows.
func Summarize(rows []TraceRow) Summary {
	s := Summary{Ticks: len(rows)}
	if len(rows) == 0 {
		return s
	}
	grounded := make([]float64, len(rows))
	speed := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		if r.Grounded {
			grounded[i] = 1
		}
		speed[i] = math.Abs(r.VX)
		ys[i] = r.Y
		for _, kind := range strings.Split(r.Events, ";") {
			switch ecs.GroundingEventKind(kind) {
			case ecs.GroundingJumped:
				s.Jumps++
			case ecs.GroundingLanded:
				s.Landings++
			}
		}
	}
	s.GroundedFraction = stat.Mean(grounded, nil)
	s.MeanSpeedX = stat.Mean(speed, nil)
	s.PeakY = floats.Max(ys)
	return s
}
