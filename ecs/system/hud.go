package system

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rakesh/ecs"
	"golang.org/x/image/font/gofont/goregular"
)

const hudFontSize = 18

// HUDSystem draws the score and star counters in screen space.
type HUDSystem struct {
	face text.Face
}

func NewHUDSystem() *HUDSystem {
	return newHUDSystem(goregular.TTF)
}

// newHUDSystem parses ttf for the counters. A font that fails to parse is
// logged and leaves the HUD blank rather than stopping the game.
func newHUDSystem(ttf []byte) *HUDSystem {
	h := &HUDSystem{}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Warn("hud font unavailable, counters hidden", "err", err)
		return h
	}
	h.face = &text.GoTextFace{Source: src, Size: hudFontSize}
	return h
}

// HUDLines returns the counter strings and their screen positions.
func HUDLines(w *ecs.World, screenH float64) []HUDLine {
	_, progress, ok := levelProgress(w)
	if !ok {
		return nil
	}
	y := screenH - 24
	return []HUDLine{
		{Text: fmt.Sprintf("Score: %d", progress.Score), X: 10, Y: y},
		{Text: fmt.Sprintf("Stars: %d", progress.Stars), X: 110, Y: y},
	}
}

type HUDLine struct {
	Text string
	X, Y float64
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil || h.face == nil {
		return
	}
	for _, line := range HUDLines(w, float64(screen.Bounds().Dy())) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(line.X, line.Y)
		op.ColorScale.ScaleWithColor(color.Black)
		text.Draw(screen, line.Text, h.face, op)
	}
}
