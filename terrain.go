package worldmesh

// Block is a single voxel type.
type Block uint8

const (
	BlockAir Block = iota
	BlockGrass
	BlockStone
	BlockDirt
	BlockWater
)

// Opaque reports whether the block hides faces behind it. Water occupies
// space but stays see-through for face culling.
func (b Block) Opaque() bool {
	return b != BlockAir && b != BlockWater
}

const haloSize = ChunkSize + 2

// Terrain is a chunk's dense voxel grid with a one-voxel halo on every face,
// so neighbor lookups at chunk borders never reach into another chunk.
// Indexes are valid over [-1, ChunkSize].
type Terrain struct {
	blocks [haloSize * haloSize * haloSize]Block
}

func terrainIndex(x, y, z int) int {
	return ((x+1)*haloSize+y+1)*haloSize + z + 1
}

// Get returns the block at chunk-local coordinates, halo included.
func (t *Terrain) Get(x, y, z int) Block {
	return t.blocks[terrainIndex(x, y, z)]
}

func (t *Terrain) set(x, y, z int, b Block) {
	t.blocks[terrainIndex(x, y, z)] = b
}

// Terrain rule constants.
const (
	waterHeight    = -12.0
	dirtDepth      = 4.0
	grassDepth     = 2.0
	carveThreshold = -0.2

	heightAmplitude = 100.0

	// density lattice stride in voxels
	latticeStep = 4
)

// Generator produces terrain deterministically from a seed. It is safe for
// concurrent use: generation only reads the two noise field definitions.
type Generator struct {
	height  noiseField
	density noiseField
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		height: noiseField{
			seed:        seed * 71,
			octaves:     8,
			frequency:   0.001,
			lacunarity:  2.0,
			persistence: 0.5,
		},
		density: noiseField{
			seed:        seed,
			octaves:     4,
			frequency:   0.015,
			lacunarity:  2.0,
			persistence: 0.5,
		},
	}
}

// HeightAt returns the surface height of the terrain at a world column.
func (g *Generator) HeightAt(wx, wz float64) float64 {
	return g.height.at2(wx, wz) * heightAmplitude
}

// latticeDim covers lattice points -1..ChunkSize/latticeStep+1, one cell of
// margin on both sides so halo voxels interpolate without bounds checks.
const latticeDim = ChunkSize/latticeStep + 3

// Generate fills a haloed voxel grid for the chunk at c. Pure: identical
// seed and coordinate always produce bit-identical output.
func (g *Generator) Generate(c Coord) *Terrain {
	t := &Terrain{}
	ox, oy, oz := c.Origin()
	scale := c.Scale()

	// Density is expensive at full resolution, so sample it on a coarse
	// lattice and trilinearly interpolate per voxel below.
	var density [latticeDim][latticeDim][latticeDim]float64
	for lx := -1; lx <= ChunkSize/latticeStep+1; lx++ {
		for ly := -1; ly <= ChunkSize/latticeStep+1; ly++ {
			for lz := -1; lz <= ChunkSize/latticeStep+1; lz++ {
				wx := float64(ox + int64(lx*latticeStep)*scale)
				wy := float64(oy + int64(ly*latticeStep)*scale)
				wz := float64(oz + int64(lz*latticeStep)*scale)
				density[lx+1][ly+1][lz+1] = g.density.at(wx, wy, wz)
			}
		}
	}

	for bx := -1; bx <= ChunkSize; bx++ {
		for bz := -1; bz <= ChunkSize; bz++ {
			wx := float64(ox + int64(bx)*scale)
			wz := float64(oz + int64(bz)*scale)
			height := g.HeightAt(wx, wz)

			for by := -1; by <= ChunkSize; by++ {
				wy := float64(oy + int64(by)*scale)

				b := BlockAir
				if wy < height {
					switch {
					case wy > height-grassDepth:
						b = BlockGrass
					case wy > height-dirtDepth:
						b = BlockDirt
					default:
						b = BlockStone
					}
				}
				if b == BlockAir && wy < waterHeight {
					b = BlockWater
				}

				// Solid candidates get carved into caves and overhangs where
				// the interpolated density drops below the threshold. Water
				// is never carved.
				if b != BlockAir && b != BlockWater {
					if interpolateDensity(&density, bx, by, bz) < carveThreshold {
						b = BlockAir
					}
				}

				if b != BlockAir {
					t.set(bx, by, bz, b)
				}
			}
		}
	}

	return t
}

// interpolateDensity trilinearly interpolates the lattice at a voxel. The
// cell index is floor-based so halo voxels land in the same world-space cell
// as the neighboring chunk's interior, keeping seams consistent.
func interpolateDensity(density *[latticeDim][latticeDim][latticeDim]float64, bx, by, bz int) float64 {
	cx := int(floorDiv(int64(bx), latticeStep))
	cy := int(floorDiv(int64(by), latticeStep))
	cz := int(floorDiv(int64(bz), latticeStep))

	fx := float64(bx-cx*latticeStep) / latticeStep
	fy := float64(by-cy*latticeStep) / latticeStep
	fz := float64(bz-cz*latticeStep) / latticeStep

	x := cx + 1
	y := cy + 1
	z := cz + 1

	return density[x][y][z]*(1-fx)*(1-fy)*(1-fz) +
		density[x][y][z+1]*(1-fx)*(1-fy)*fz +
		density[x][y+1][z]*(1-fx)*fy*(1-fz) +
		density[x][y+1][z+1]*(1-fx)*fy*fz +
		density[x+1][y][z]*fx*(1-fy)*(1-fz) +
		density[x+1][y][z+1]*fx*(1-fy)*fz +
		density[x+1][y+1][z]*fx*fy*(1-fz) +
		density[x+1][y+1][z+1]*fx*fy*fz
}
