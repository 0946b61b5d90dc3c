package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ybot/anim"
	"golang.org/x/image/colornames"
)

// Projector maps a world point to screen pixels.
type Projector func(mgl64.Vec3) (x, y float64, ok bool)

// Light is a directional light that casts shadows onto the ground plane.
type Light struct {
	Direction mgl64.Vec3
	Shadow    color.Color
}

// DefaultLight shines down and away from the default camera.
func DefaultLight() Light {
	return Light{
		Direction: mgl64.Vec3{0, -0.5, -1}.Normalize(),
		Shadow:    color.RGBA{A: 90},
	}
}

// ShadowPoint follows the light from p down to the ground (y = 0). ok is
// false when the light never reaches the ground.
func (l Light) ShadowPoint(p mgl64.Vec3) (mgl64.Vec3, bool) {
	d := l.Direction
	if d.Y() >= 0 {
		return mgl64.Vec3{}, false
	}
	t := -p.Y() / d.Y()
	return p.Add(d.Mul(t)), true
}

var (
	groundColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	boneColor   = colornames.Lightsteelblue
	jointColor  = colornames.Orange
)

// DrawGround draws a square grid of lines on y = 0 centered on the origin.
func DrawGround(screen *ebiten.Image, project Projector, half, step float64) {
	if step <= 0 {
		return
	}
	for v := -half; v <= half+1e-9; v += step {
		line(screen, project, mgl64.Vec3{v, 0, -half}, mgl64.Vec3{v, 0, half}, 1, groundColor)
		line(screen, project, mgl64.Vec3{-half, 0, v}, mgl64.Vec3{half, 0, v}, 1, groundColor)
	}
}

// DrawShadow draws every bone flattened onto the ground along the light.
func DrawShadow(screen *ebiten.Image, project Projector, pose anim.Pose, light Light) {
	for _, j := range pose.Joints {
		head, ok1 := light.ShadowPoint(j.Head)
		tail, ok2 := light.ShadowPoint(j.Tail)
		if !ok1 || !ok2 {
			continue
		}
		line(screen, project, head, tail, 6, light.Shadow)
	}
}

// DrawSkeleton draws bones as lines with a dot on each joint.
func DrawSkeleton(screen *ebiten.Image, project Projector, pose anim.Pose) {
	for _, j := range pose.Joints {
		line(screen, project, j.Head, j.Tail, 4, boneColor)
	}
	for _, j := range pose.Joints {
		if x, y, ok := project(j.Head); ok {
			vector.FillCircle(screen, float32(x), float32(y), 3, jointColor, true)
		}
	}
}

func line(screen *ebiten.Image, project Projector, a, b mgl64.Vec3, width float32, clr color.Color) {
	ax, ay, ok1 := project(a)
	bx, by, ok2 := project(b)
	if !ok1 || !ok2 {
		return
	}
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
}
