package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/ybot/anim"
	"github.com/milk9111/ybot/assets"
	"github.com/milk9111/ybot/common"
	"github.com/milk9111/ybot/obj"
	"github.com/milk9111/ybot/render"
	"github.com/milk9111/ybot/robot"
)

const (
	baseWidth  = common.BaseWidth
	baseHeight = common.BaseHeight

	groundHalfSize = 5
	groundStep     = 0.5
)

type Game struct {
	cfg    Config
	frames int

	scene      *anim.Scene
	controller *robot.Controller
	dispatcher *robot.Dispatcher

	input  *obj.Input
	camera *obj.Camera
	light  render.Light
	hud    *render.HUD

	loader    *assets.Loader
	watcher   *assets.Watcher
	loadingUI *ebitenui.UI
	loading   bool
}

func NewGame(cfg Config) (*Game, error) {
	loader, err := assets.NewLoader(cfg.AssetDir, cfg.LoaderWorkers)
	if err != nil {
		return nil, err
	}

	scene := anim.NewScene()
	controller := robot.NewController(scene)
	hud := render.NewHUD()
	g := &Game{
		cfg:        cfg,
		scene:      scene,
		controller: controller,
		dispatcher: robot.NewDispatcher(controller),
		input:      obj.NewInput(),
		camera:     obj.NewCamera(baseWidth, baseHeight),
		light:      render.DefaultLight(),
		hud:        hud,
		loader:     loader,
		loadingUI:  NewLoadingUI(hud.Face()),
		loading:    true,
	}

	if cfg.Watch {
		w, err := assets.NewWatcher(cfg.AssetDir)
		if err != nil {
			loader.Close()
			return nil, fmt.Errorf("watch %s: %w", cfg.AssetDir, err)
		}
		g.watcher = w
	}

	if err := loader.Load(cfg.Skeleton, g.onSkeletonLoaded); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

// onSkeletonLoaded runs on the update goroutine via Loader.Poll.
func (g *Game) onSkeletonLoaded(skel *anim.Skeleton, err error) {
	if err != nil {
		if g.controller.Skeleton() == nil {
			log.Fatalf("robot: no skeleton to show: %v", err)
		}
		// keep whatever is bound; a bad edit should not drop the rig
		return
	}
	g.controller.Bind(skel)
	if g.loading {
		log.Printf("robot: %s ready with %d bones", skel.Name, len(skel.Bones))
	} else {
		log.Printf("robot: reloaded %s", skel.Name)
	}
	g.loading = false
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}

	g.loader.Poll()
	g.pollWatcher()
	if g.loading {
		g.loadingUI.Update()
	}

	for _, ev := range g.input.Update() {
		if g.cfg.Debug {
			log.Printf("robot: key event %#v", ev)
		}
		g.dispatcher.OnKeyEvent(ev)
	}

	g.camera.Update()
	g.scene.Tick()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name := <-g.watcher.Events:
			if filepath.Base(name) != filepath.Base(g.cfg.Skeleton) {
				continue
			}
			if err := g.loader.Load(g.cfg.Skeleton, g.onSkeletonLoaded); err != nil {
				log.Printf("assets: reload %s: %v", name, err)
			}
		case err := <-g.watcher.Errors:
			log.Printf("assets: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	project := render.Projector(g.camera.Projector())
	render.DrawGround(screen, project, groundHalfSize, groundStep)

	if skel := g.controller.Skeleton(); skel != nil {
		pose := g.scene.Pose(skel)
		render.DrawShadow(screen, project, pose, g.light)
		render.DrawSkeleton(screen, project, pose)
	}

	g.hud.Draw(screen, g.statusLines())

	if g.loading {
		g.loadingUI.Draw(screen)
	}
}

func (g *Game) statusLines() []string {
	lines := []string{
		fmt.Sprintf("Frames: %d    FPS: %.2f    Ticks: %d", g.frames, ebiten.ActualFPS(), g.scene.Ticks()),
		fmt.Sprintf("State: %s", g.controller.State()),
		"W walk  A strafe left  S stop  D strafe right",
	}
	if g.cfg.Debug {
		skel := g.controller.Skeleton()
		lines = append(lines,
			fmt.Sprintf("In flight: %v", g.dispatcher.InFlight()),
			fmt.Sprintf("Ranges: %d/5", g.controller.Ranges().Resolved()),
			fmt.Sprintf("Playbacks: %d  blending: %v", len(g.scene.Playbacks(skel)), g.scene.Blending(skel)),
			fmt.Sprintf("Camera: radius %.2f", g.camera.Radius),
		)
	}
	return lines
}

// Close releases the loader pool and file watcher.
func (g *Game) Close() {
	if g == nil {
		return
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.loader.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
