package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.VisMode = (g.VisMode + 1) % numVisModes
		g.trails.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.camera.Reset()
	}

	// Force distance, held keys repeat every frame
	if ebiten.IsKeyPressed(ebiten.KeyNumpadAdd) || ebiten.IsKeyPressed(ebiten.KeyEqual) {
		g.runner.AdjustForceDistance(1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyNumpadSubtract) || ebiten.IsKeyPressed(ebiten.KeyMinus) {
		g.runner.AdjustForceDistance(-1)
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		g.camera.ZoomBy(wheelY * 0.1)
	}

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	g.camera.Drag(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}
