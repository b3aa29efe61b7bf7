package view

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/olivierh59500/particle-life-groups/life"
)

var speciesColors = map[life.Species]color.RGBA{
	life.Red:           colornames.Red,
	life.Green:         colornames.Lime,
	life.Blue:          colornames.Blue,
	life.White:         colornames.White,
	life.Orange:        colornames.Orange,
	life.Purple:        colornames.Purple,
	life.Yellow:        colornames.Yellow,
	life.Plum:          colornames.Plum,
	life.Coral:         colornames.Coral,
	life.Fuchsia:       colornames.Fuchsia,
	life.Navy:          colornames.Navy,
	life.LavenderBlush: colornames.Lavenderblush,
}

// SpeciesColor returns the display color of a species.
func SpeciesColor(s life.Species) color.RGBA {
	if c, ok := speciesColors[s]; ok {
		return c
	}
	return colornames.Gray
}
