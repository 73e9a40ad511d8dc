package worldmesh

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Preview renders a top-down snapshot of generated terrain around the world
// origin. Column heights come straight from the generator's height field and
// the water level is the terrain rule's, so the image agrees with what chunk
// generation produces at the surface.
type Preview struct {
	gen         *Generator
	palette     *Palette
	radius      int // in chunks
	shading     bool
	concurrency int
}

func NewPreview(seed int64, radius int, shading bool, concurrency int) *Preview {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	if radius <= 0 {
		radius = 1
	}
	return &Preview{
		gen:         NewGenerator(seed),
		palette:     NewPalette(),
		radius:      radius,
		shading:     shading,
		concurrency: concurrency,
	}
}

// RenderImage renders chunk-column tiles concurrently and composites them
// into one image spanning [-radius, radius) chunks on both ground axes.
func (p *Preview) RenderImage() (image.Image, error) {
	span := 2 * p.radius * ChunkSize
	img := image.NewRGBA(image.Rect(0, 0, span, span))

	var eg errgroup.Group
	eg.SetLimit(p.concurrency)
	for cx := -p.radius; cx < p.radius; cx++ {
		for cz := -p.radius; cz < p.radius; cz++ {
			cx, cz := cx, cz
			eg.Go(func() error {
				tile := p.renderTile(cx, cz)
				// tiles occupy disjoint rectangles, so compositing from
				// multiple goroutines is safe
				pnt := image.Point{
					(cx + p.radius) * ChunkSize,
					(cz + p.radius) * ChunkSize,
				}
				draw.Draw(img, tile.Bounds().Add(pnt), tile, image.Point{}, draw.Src)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// renderTile renders one chunk column. Water is darkened by depth; land is
// shaded by the height drop against its west and north neighbor columns,
// re-evaluated from the height field so tile borders need no cross-tile
// state.
func (p *Preview) renderTile(cx, cz int) image.Image {
	tile := image.NewRGBA(image.Rect(0, 0, ChunkSize, ChunkSize))

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			wx := float64(cx*ChunkSize + x)
			wz := float64(cz*ChunkSize + z)
			h := p.gen.HeightAt(wx, wz)

			if h < waterHeight {
				tile.Set(x, z, p.palette.WaterColor(waterHeight-h))
				continue
			}

			clr := p.palette.Color(BlockGrass)
			if p.shading {
				var drop float64
				if d := p.gen.HeightAt(wx-1, wz) - h; d > 0 {
					drop += d
				}
				if d := p.gen.HeightAt(wx, wz-1) - h; d > 0 {
					drop += d
				}
				clr = p.palette.Shade(clr, drop)
			}
			tile.Set(x, z, clr)
		}
	}

	return tile
}

// Render writes the preview as a PNG.
func (p *Preview) Render(out string) error {
	img, err := p.RenderImage()
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create preview image %s: %v", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode preview image %s: %v", out, err)
	}
	return nil
}
