// Package ebiten provides Ebiten rendering for the APU output.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Native scope resolution, scaled to fit the window.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)

var (
	// LCD green background and trace
	scopeBackground = color.RGBA{0xCA, 0xDC, 0x9F, 0xFF}
	scopeTrace      = color.RGBA{0x0F, 0x38, 0x0F, 0xFF}
	scopeAxis       = color.RGBA{0x8B, 0xAC, 0x0F, 0xFF}
)

// Scope draws a mono sample window as an oscilloscope trace.
type Scope struct {
	offscreen *ebiten.Image           // Native resolution buffer
	drawOpts  ebiten.DrawImageOptions // Reused per frame
}

// NewScope creates a scope renderer.
func NewScope() *Scope {
	return &Scope{
		offscreen: ebiten.NewImage(ScreenWidth, ScreenHeight),
	}
}

// Draw renders samples oldest first across the width of the screen,
// preserving the native aspect ratio.
func (s *Scope) Draw(screen *ebiten.Image, samples []int16) {
	s.offscreen.Fill(scopeBackground)

	mid := float32(ScreenHeight) / 2
	vector.StrokeLine(s.offscreen, 0, mid, ScreenWidth, mid, 1, scopeAxis, false)

	if len(samples) > 1 {
		xStep := float32(ScreenWidth) / float32(len(samples)-1)
		yScale := mid / 32768
		x0, y0 := float32(0), mid-float32(samples[0])*yScale
		for i := 1; i < len(samples); i++ {
			x1 := float32(i) * xStep
			y1 := mid - float32(samples[i])*yScale
			vector.StrokeLine(s.offscreen, x0, y0, x1, y1, 1, scopeTrace, false)
			x0, y0 = x1, y1
		}
	}

	// Calculate scaling to fit window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := min(float64(screenW)/ScreenWidth, float64(screenH)/ScreenHeight)
	offsetX := (float64(screenW) - ScreenWidth*scale) / 2
	offsetY := (float64(screenH) - ScreenHeight*scale) / 2

	s.drawOpts = ebiten.DrawImageOptions{}
	s.drawOpts.GeoM.Scale(scale, scale)
	s.drawOpts.GeoM.Translate(offsetX, offsetY)
	s.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(s.offscreen, &s.drawOpts)
}

// Layout implements ebiten.Game.
func (s *Scope) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
