package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-life-groups/view"
)

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	world := g.runner.World()
	pw, ph := world.Engine.Params.Width, world.Engine.Params.Height
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())
	dxFrom, dxTo, dyFrom, dyTo := g.camera.Tiles(sw, sh, pw, ph)

	for dx := dxFrom; dx < dxTo; dx++ {
		for dy := dyFrom; dy < dyTo; dy++ {
			offsetX := float64(dx) * pw
			offsetY := float64(dy) * ph
			g.drawBackground(screen, offsetX, offsetY)
			switch g.VisMode {
			case VisParticles:
				g.drawParticles(screen, offsetX, offsetY, sw, sh)
			case VisTrails:
				g.drawTrails(screen, offsetX, offsetY)
			}
		}
	}

	g.drawHUD(screen)
}

// drawBackground draws the noise field for one tile, building it on first use.
func (g *Game) drawBackground(screen *ebiten.Image, offsetX, offsetY float64) {
	if g.field == nil {
		return
	}
	if g.background == nil {
		img := view.NoiseField(g.field, g.cfg.Screen.Width, g.cfg.Screen.Height, g.cfg.Render.NoiseScale)
		g.background = ebiten.NewImageFromImage(img)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(view.BackgroundCell, view.BackgroundCell)
	op.GeoM.Translate(offsetX-g.camera.X, offsetY-g.camera.Y)
	op.GeoM.Scale(g.camera.Zoom, g.camera.Zoom)
	screen.DrawImage(g.background, op)
}

// drawParticles draws one filled circle per particle, radius by mass.
func (g *Game) drawParticles(screen *ebiten.Image, offsetX, offsetY, sw, sh float64) {
	scale := g.cfg.Render.ParticleScale
	for _, group := range g.runner.World().Groups {
		col := view.SpeciesColor(group.Species)
		for _, p := range group.Particles {
			r := p.Mass * scale * g.camera.Zoom
			sx, sy := g.camera.WorldToScreen(p.X+offsetX, p.Y+offsetY)
			if sx < -r || sx > sw+r || sy < -r || sy > sh+r {
				continue
			}
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), col, true)
		}
	}
}

// drawTrails draws the recorded path of every particle.
func (g *Game) drawTrails(screen *ebiten.Image, offsetX, offsetY float64) {
	world := g.runner.World()
	pw, ph := world.Engine.Params.Width, world.Engine.Params.Height
	for gi, group := range world.Groups {
		col := view.SpeciesColor(group.Species)
		for i := range group.Particles {
			path := g.trails.Path(gi, i)
			for k := 1; k < len(path); k++ {
				if view.Wrapped(path[k-1], path[k], pw, ph) {
					continue
				}
				x0, y0 := g.camera.WorldToScreen(path[k-1].X+offsetX, path[k-1].Y+offsetY)
				x1, y1 := g.camera.WorldToScreen(path[k].X+offsetX, path[k].Y+offsetY)
				vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, col, true)
			}
		}
	}
}

// drawHUD prints the live tunable and frame rate.
func (g *Game) drawHUD(screen *ebiten.Image) {
	msg := fmt.Sprintf("Force Distance: %.0f\n\nPress +/- to change\n\n\nFPS: %.0f  TPS: %.0f",
		g.runner.ForceDistance(), ebiten.ActualFPS(), ebiten.ActualTPS())
	if g.Paused {
		msg += "\nPAUSED"
	}
	ebitenutil.DebugPrint(screen, msg)
}
