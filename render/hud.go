package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 16

// HUD prints status lines in the top-left corner.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Face returns the font used by the HUD.
func (h *HUD) Face() text.Face {
	return h.face
}

func (h *HUD) Draw(screen *ebiten.Image, lines []string) {
	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, float64(8+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, l, h.face, op)
	}
}
