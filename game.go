package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/controller2d/ecs"
	"github.com/milk9111/controller2d/ecs/component"
	"github.com/milk9111/controller2d/ecs/entity"
	"github.com/milk9111/controller2d/ecs/system"
	"github.com/milk9111/controller2d/physics"
	"github.com/milk9111/controller2d/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth     = 1280
	baseHeight    = 720
	pixelsPerUnit = 32
	killY         = -5
)

type Options struct {
	ConfigPath string
	Script     string
	Debug      bool
	Watch      bool
}

type Game struct {
	opts    Options
	log     *slog.Logger
	world   *ecs.World
	physics *system.PhysicsSystem
	sched   *ecs.Scheduler
	events  *eventLog
	watcher *prefabs.Watcher
	cam     system.Camera
	player  ecs.Entity
	frames  int
}

func NewGame(opts Options, log *slog.Logger) (*Game, error) {
	level, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadControllerSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	pw := physics.NewWorld(level.GravityVec(), log)
	if _, err := entity.LoadLevel(pw, level, log); err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		log:    log,
		world:  ecs.NewWorld(),
		events: &eventLog{log: log},
		cam:    system.Camera{Zoom: pixelsPerUnit, Width: baseWidth, Height: baseHeight},
	}

	if opts.Script != "" {
		src, err := prefabs.LoadScript(opts.Script)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", opts.Script, err)
		}
		g.player, err = entity.NewScriptedPlayerAt(g.world, pw, spec, level.SpawnPoint(), string(src), log)
		if err != nil {
			return nil, err
		}
	} else {
		g.player, err = entity.NewPlayerAt(g.world, pw, spec, level.SpawnPoint(), log)
		if err != nil {
			return nil, err
		}
	}

	g.physics = system.NewPhysicsSystem(pw, level.TickRate)
	g.sched = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewScriptInputSystem(log),
		system.NewCharacterControllerSystem(pw, log),
		g.physics,
		system.NewRespawnSystem(pw, killY, log),
		g.events,
	)

	if opts.Watch {
		if err := g.startWatcher(); err != nil {
			log.Warn("live reload disabled", "err", err)
		}
	}
	return g, nil
}

func (g *Game) startWatcher() error {
	paths := []string{filepath.Join("prefabs"), filepath.Join("prefabs", "scripts")}
	if g.opts.ConfigPath != "" {
		paths = append(paths, filepath.Dir(g.opts.ConfigPath))
	}
	w, err := prefabs.NewWatcher(paths...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

// TickRate returns the fixed update rate shared by ebiten and physics.
func (g *Game) TickRate() int {
	return int(1/g.physics.DT() + 0.5)
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.frames++
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}

	g.sched.Update(g.world)
	g.cam.Follow(g.world)
	return nil
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.DrainErrors() {
		g.log.Warn("live reload watcher error", "err", err)
	}
	for _, path := range g.watcher.Poll() {
		switch filepath.Ext(path) {
		case ".tengo":
			g.reloadScript(path)
		default:
			ctrl, ok := entity.PlayerController(g.world)
			if !ok {
				continue
			}
			body, _ := entity.PlayerBody(g.world)
			if err := prefabs.ReloadController(ctrl, body, g.opts.ConfigPath, g.log); err != nil {
				continue
			}
			g.log.Debug("player config applied", "path", path)
		}
	}
}

func (g *Game) reloadScript(path string) {
	src, ok := ecs.Get(g.world, g.player, component.ScriptedInputComponent.Kind())
	if !ok || filepath.Base(path) != filepath.Base(scriptFile(g.opts.Script)) {
		return
	}
	data, err := prefabs.LoadScript(g.opts.Script)
	if err != nil {
		g.log.Warn("script reload failed", "path", path, "err", err)
		return
	}
	src.Script = string(data)
	g.log.Info("script reloaded", "path", path)
}

func (g *Game) respawn() {
	if err := ecs.Add(g.world, g.player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}); err != nil {
		g.log.Warn("respawn request failed", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	system.DrawPhysicsDebug(g.physics.World().Space(), g.world, g.cam, screen)
	if g.opts.Debug {
		system.DrawPlayerStateDebug(g.world, screen)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.0f  last: %s  [R] respawn  [F1] debug", ebiten.ActualTPS(), g.events.last))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// eventLog records grounding events before the scheduler clears them.
type eventLog struct {
	log  *slog.Logger
	last ecs.GroundingEventKind
}

func (l *eventLog) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		l.last = evt.Kind
		l.log.Debug("grounding", "entity", evt.Entity, "event", evt.Kind)
	}
}

func scriptFile(name string) string {
	if filepath.Ext(name) == ".tengo" {
		return name
	}
	return name + ".tengo"
}
