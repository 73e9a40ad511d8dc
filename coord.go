package worldmesh

// ChunkSize is the edge length of a chunk in voxels at LOD 0.
const ChunkSize = 32

// Coord identifies a chunk in chunk units. LOD participates in identity: the
// same region at two detail levels is two distinct cache entries.
type Coord struct {
	X, Y, Z int64
	LOD     uint8
}

// Scale returns the world-unit size of a single voxel at this LOD.
func (c Coord) Scale() int64 {
	return 1 << c.LOD
}

// Span returns the world-unit size of the whole chunk.
func (c Coord) Span() int64 {
	return ChunkSize << c.LOD
}

// Origin returns the chunk's world-space origin.
func (c Coord) Origin() (int64, int64, int64) {
	s := c.Span()
	return c.X * s, c.Y * s, c.Z * s
}

// Parent returns the coordinate of the coarser chunk covering this region.
// Arithmetic shift keeps the floor semantics for negative coordinates.
func (c Coord) Parent() Coord {
	return Coord{X: c.X >> 1, Y: c.Y >> 1, Z: c.Z >> 1, LOD: c.LOD + 1}
}

// Less orders coordinates lexically. Used wherever ties must break
// deterministically.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	if c.Z != o.Z {
		return c.Z < o.Z
	}
	return c.LOD < o.LOD
}

func (c Coord) hash() uint64 {
	v := uint64(c.X)*0x9e3779b97f4a7c15 ^
		uint64(c.Y)*0xc2b2ae3d27d4eb4f ^
		uint64(c.Z)*0xbf58476d1ce4e5b9 ^
		uint64(c.LOD)
	return mix64(v)
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func floorDiv(a, b int64) int64 {
	// b > 0
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}
