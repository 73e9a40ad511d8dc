package worldmesh

import (
	"image/color"

	"github.com/muesli/gamut"
)

// Palette maps block types to colors for the preview renderer.
type Palette struct {
	colors map[Block]color.Color
}

func NewPalette() *Palette {
	return &Palette{
		colors: map[Block]color.Color{
			BlockGrass: gamut.Hex("#4f9d3f"),
			BlockStone: gamut.Hex("#8d8d93"),
			BlockDirt:  gamut.Hex("#8a6a45"),
			BlockWater: gamut.Hex("#2f6df6"),
		},
	}
}

// Color returns the base color for a block. Air has no surface and maps to
// transparent.
func (p *Palette) Color(b Block) color.Color {
	c, ok := p.colors[b]
	if !ok {
		return color.Transparent
	}
	return c
}

// WaterColor darkens the water color with depth so deeper water reads
// darker.
func (p *Palette) WaterColor(depth float64) color.Color {
	d := depth / 64.0
	if d > 0.8 {
		d = 0.8
	}
	if d < 0 {
		d = 0
	}
	return gamut.Darker(p.colors[BlockWater], d)
}

// Shade darkens a surface color by how far it sits below its neighbors,
// giving slopes a cheap relief effect.
func (p *Palette) Shade(c color.Color, drop float64) color.Color {
	d := drop / 32.0
	if d > 0.5 {
		d = 0.5
	}
	if d <= 0 {
		return c
	}
	return gamut.Darker(c, d)
}
