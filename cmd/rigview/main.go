// Command rigview previews one animation range of a skeleton asset, or with
// -check validates the asset and lists its ranges without opening a window.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ybot/anim"
	"github.com/milk9111/ybot/assets"
	"github.com/milk9111/ybot/obj"
	"github.com/milk9111/ybot/render"
)

const viewSize = 512

type previewGame struct {
	scene    *anim.Scene
	skeleton *anim.Skeleton
	camera   *obj.Camera
	light    render.Light
	hud      *render.HUD
	label    string
}

func (g *previewGame) Update() error {
	g.camera.Update()
	g.scene.Tick()
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	project := render.Projector(g.camera.Projector())
	render.DrawGround(screen, project, 2, 0.5)
	pose := g.scene.Pose(g.skeleton)
	render.DrawShadow(screen, project, pose, g.light)
	render.DrawSkeleton(screen, project, pose)
	g.hud.Draw(screen, []string{g.label})
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	dir := flag.String("assets", "", "directory whose asset files override the embedded ones")
	name := flag.String("skeleton", assets.DefaultSkeleton, "skeleton asset to load")
	rangeName := flag.String("range", "YBot_Walk", "range to preview")
	speed := flag.Float64("speed", 1, "playback speed ratio")
	check := flag.Bool("check", false, "validate the asset and list its ranges, then exit")
	flag.Parse()

	skel, err := assets.LoadSkeleton(*dir, *name)
	if err != nil {
		log.Fatal(err)
	}

	if *check {
		lo, hi := anim.Solve(skel, nil).Bounds()
		fmt.Printf("%s: %d bones, %v fps, %.2f tall at rest\n", skel.Name, len(skel.Bones), skel.FrameRate, hi.Y()-lo.Y())
		for _, r := range skel.Ranges() {
			fmt.Printf("  %-24s %6.0f-%-6.0f (%v frames)\n", r.Name, r.From, r.To, r.Length())
		}
		return
	}

	rng := skel.Range(*rangeName)
	if rng == nil {
		fmt.Fprintf(os.Stderr, "rigview: %s has no range %q\n", skel.Name, *rangeName)
		os.Exit(1)
	}

	scene := anim.NewScene()
	p := scene.BeginAnimation(skel, rng.From, rng.To, true)
	p.SpeedRatio = *speed

	g := &previewGame{
		scene:    scene,
		skeleton: skel,
		camera:   obj.NewCamera(viewSize, viewSize),
		light:    render.DefaultLight(),
		hud:      render.NewHUD(),
		label:    fmt.Sprintf("%s / %s x%.2f", skel.Name, rng.Name, *speed),
	}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("rigview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
