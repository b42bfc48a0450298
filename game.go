package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rakesh/common"
	"github.com/milk9111/rakesh/ecs"
	"github.com/milk9111/rakesh/ecs/component"
	"github.com/milk9111/rakesh/ecs/entity"
	"github.com/milk9111/rakesh/ecs/system"
	"github.com/milk9111/rakesh/levels"
	"github.com/milk9111/rakesh/prefabs"
	"github.com/milk9111/rakesh/storage"
)

type scene int

const (
	sceneTitle scene = iota
	sceneInstructions
	sceneLevelSelect
	scenePlay
	sceneVictory
)

var (
	playBackground         = color.NRGBA{R: 0x3b, G: 0x7a, B: 0x57, A: 0xff}
	instructionsBackground = color.NRGBA{R: 0x00, G: 0x4b, B: 0x49, A: 0xff}
	levelSelectBackground  = color.NRGBA{R: 0x00, G: 0x31, B: 0x53, A: 0xff}
)

type Options struct {
	// StartLevel is 1-based; 0 opens the title screen unless SkipMenu is set.
	StartLevel int
	SkipMenu   bool
	Debug      bool
	// Store records completed levels. May be nil.
	Store *storage.Store
}

type Game struct {
	opts Options

	scene  scene
	paused bool
	quit   bool

	world     *ecs.World
	backdrop  *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	flow      *system.LevelFlowSystem
	render    *system.RenderSystem
	hud       *system.HUDSystem

	ui      *ebitenui.UI
	pauseUI *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, fmt.Errorf("game: world spec: %w", err)
	}

	g := &Game{
		opts:     opts,
		world:    ecs.NewWorld(),
		backdrop: ecs.NewWorld(),
		physics:  system.NewPhysicsSystem(worldSpec),
		render:   system.NewRenderSystem(),
		hud:      system.NewHUDSystem(),
	}

	if _, err := entity.NewSoundBank(g.world); err != nil {
		return nil, fmt.Errorf("game: sound bank: %w", err)
	}

	title, err := levels.LoadLevelFromFS(levels.TitleLevel)
	if err != nil {
		return nil, fmt.Errorf("game: title backdrop: %w", err)
	}
	if err := entity.LoadLevelToWorld(g.backdrop, title, 0); err != nil {
		return nil, fmt.Errorf("game: title backdrop: %w", err)
	}

	g.physics.SpecSource = prefabs.LoadWorldSpec
	g.flow = system.NewLevelFlowSystem(g.physics, system.LoadEmbeddedLevel)
	g.flow.OnLevelComplete = g.recordRun
	g.flow.OnGameComplete = g.showVictory
	g.flow.OnLoadError = func(error) { g.showTitle() }

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(nil),
		system.NewLadderSystem(),
		system.NewPlayerControllerSystem(),
		system.NewBulletSystem(worldSpec.BulletCleanupPadding, nil),
		system.NewMoverSystem(),
		g.physics,
		system.NewPlayerAnimationSystem(),
		system.NewPickupCollectSystem(),
		system.NewKeyLockSystem(),
		system.NewHazardSystem(),
		system.NewExitSystem(),
		system.NewCameraSystem(),
		system.NewAudioSystem(),
		system.NewTTLSystem(),
		g.flow,
	)
	g.pauseUI = NewPauseUI(g)

	if opts.Debug {
		g.watcher, err = prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			log.Debug("prefab hot reload disabled", "err", err)
		}
	}

	start := opts.StartLevel
	if start == 0 && opts.SkipMenu {
		start = 1
	}
	if start > 0 {
		if err := g.flow.Load(g.world, start); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		g.scene = scenePlay
	} else {
		g.showTitle()
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()

	switch g.scene {
	case scenePlay:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.paused = !g.paused
		}
		if g.paused {
			g.pauseUI.Update()
			break
		}
		g.scheduler.Update(g.world)
		countFrame(g.world)
	default:
		if g.ui != nil {
			g.ui.Update()
		}
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.scene {
	case scenePlay:
		screen.Fill(playBackground)
		g.render.Draw(g.world, screen)
		g.hud.Draw(g.world, screen)
		if g.opts.Debug {
			system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
			system.DrawPlayerStateDebug(g.world, screen)
		}
		if g.paused {
			g.pauseUI.Draw(screen)
		}
		return
	case sceneInstructions:
		screen.Fill(instructionsBackground)
	case sceneLevelSelect:
		screen.Fill(levelSelectBackground)
	default:
		screen.Fill(playBackground)
		g.render.Draw(g.backdrop, screen)
	}
	if g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) startLevel(index int) {
	if err := g.flow.Load(g.world, index); err != nil {
		log.Error("could not start level", "level", index, "err", err)
		g.showTitle()
		return
	}
	g.paused = false
	g.ui = nil
	g.scene = scenePlay
}

func (g *Game) restartLevel() {
	g.startLevel(max(g.flow.Current(), 1))
}

func (g *Game) showTitle() {
	g.paused = false
	g.scene = sceneTitle
	g.ui = NewTitleUI(g)
}

func (g *Game) showInstructions() {
	g.scene = sceneInstructions
	g.ui = NewInstructionsUI(g)
}

func (g *Game) showLevelSelect() {
	g.scene = sceneLevelSelect
	g.ui = NewLevelSelectUI(g, levels.Count())
}

func (g *Game) showVictory(score int) {
	g.paused = false
	g.scene = sceneVictory
	g.ui = NewVictoryUI(g, score)
}

func (g *Game) exit() {
	g.quit = true
}

// recordRun saves a finished level. Storage problems never stop play.
func (g *Game) recordRun(p component.LevelProgress) {
	if g.opts.Store == nil {
		return
	}
	if _, err := g.opts.Store.SaveRun(p.Index, p.Score, p.Stars, p.Frames); err != nil {
		log.Warn("could not save run", "level", p.Index, "err", err)
		return
	}
	log.Debug("run saved", "level", p.Index, "score", p.Score, "stars", p.Stars, "frames", p.Frames)
}

// pollWatcher asks for a level reload whenever a prefab or script changes.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Warn("prefab watcher", "err", err)
	default:
	}

	changed := g.watcher.Drain()
	if len(changed) == 0 || g.scene != scenePlay {
		return
	}
	log.Info("prefabs changed, reloading level", "files", changed)
	e := g.world.CreateEntity()
	if err := ecs.Add(g.world, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: "prefab change"}); err != nil {
		log.Error("request reload", "err", err)
	}
}

func countFrame(w *ecs.World) {
	ecs.ForEach(w, component.LevelProgressComponent.Kind(), func(_ ecs.Entity, p *component.LevelProgress) {
		p.Frames++
	})
}
