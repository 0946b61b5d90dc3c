package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ybot/common"
)

const (
	// wheelNotch is how many WheelDeltaPercentage increments one wheel
	// step applies.
	wheelNotch = 10
	// dragSensibility is pixels of mouse travel per radian.
	dragSensibility = 250
	betaEpsilon     = 0.01
	nearPlane       = 0.1
	farPlane        = 100
)

// Camera orbits a target point. Alpha is the longitude and Beta the
// latitude (0 looks straight down).
type Camera struct {
	Alpha  float64
	Beta   float64
	Radius float64
	Target mgl64.Vec3

	LowerRadiusLimit     float64
	UpperRadiusLimit     float64
	WheelDeltaPercentage float64
	FOV                  float64

	screenW int
	screenH int

	dragging     bool
	lastX, lastY int
}

// NewCamera creates the default orbit around the character's chest.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Alpha:                math.Pi / 2,
		Beta:                 math.Pi / 4,
		Radius:               3,
		Target:               mgl64.Vec3{0, 1, 0},
		LowerRadiusLimit:     2,
		UpperRadiusLimit:     10,
		WheelDeltaPercentage: 0.01,
		FOV:                  0.8,
		screenW:              screenW,
		screenH:              screenH,
	}
}

// SetScreenSize updates the logical screen size used for projection.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// Update applies mouse drag rotation and wheel zoom.
func (c *Camera) Update() {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if c.dragging {
			c.Rotate(float64(x-c.lastX), float64(y-c.lastY))
		}
		c.dragging = true
	} else {
		c.dragging = false
	}
	c.lastX, c.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		c.Zoom(wy)
	}
}

// Rotate orbits by a mouse delta in pixels.
func (c *Camera) Rotate(dx, dy float64) {
	c.Alpha -= dx / dragSensibility
	c.Beta = common.Clamp(c.Beta-dy/dragSensibility, betaEpsilon, math.Pi-betaEpsilon)
}

// Zoom moves toward the target for positive wheel steps, proportionally to
// the current radius, and keeps the radius within its limits.
func (c *Camera) Zoom(wheel float64) {
	c.Radius -= wheel * wheelNotch * c.WheelDeltaPercentage * c.Radius
	c.Radius = common.Clamp(c.Radius, c.LowerRadiusLimit, c.UpperRadiusLimit)
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl64.Vec3 {
	sinB := math.Sin(c.Beta)
	return c.Target.Add(mgl64.Vec3{
		c.Radius * math.Cos(c.Alpha) * sinB,
		c.Radius * math.Cos(c.Beta),
		c.Radius * math.Sin(c.Alpha) * sinB,
	})
}

// ViewProjection returns the combined view and projection matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	aspect := 1.0
	if c.screenH > 0 {
		aspect = float64(c.screenW) / float64(c.screenH)
	}
	view := mgl64.LookAtV(c.Position(), c.Target, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(c.FOV, aspect, nearPlane, farPlane)
	return proj.Mul4(view)
}

// Project maps a world point to screen pixels. ok is false for points
// behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	return c.project(c.ViewProjection(), p)
}

func (c *Camera) project(vp mgl64.Mat4, p mgl64.Vec3) (x, y float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < nearPlane {
		return 0, 0, false
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	x = (ndcX + 1) / 2 * float64(c.screenW)
	y = (1 - ndcY) / 2 * float64(c.screenH)
	return x, y, true
}

// Projector returns a projection function bound to the current view, for
// drawing many points in one frame.
func (c *Camera) Projector() func(mgl64.Vec3) (float64, float64, bool) {
	vp := c.ViewProjection()
	return func(p mgl64.Vec3) (float64, float64, bool) {
		return c.project(vp, p)
	}
}
