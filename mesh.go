package worldmesh

import (
	"github.com/Tnze/go-mc/level"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the CPU-side vertex layout handed to the buffer owner.
type Vertex struct {
	Position  mgl32.Vec3
	BlockType float32
}

// FaceRange is a (start, count) slice of the element buffer holding one face
// direction's triangles.
type FaceRange struct {
	Start int
	Count int
}

// Uploader owns the GPU-side buffers built from a finished mesh. Buffer
// teardown on eviction is signaled through the loader's OnEvict hook.
type Uploader interface {
	Upload(m *Mesh)
}

// Mesh is the triangle geometry of one chunk's visible surface. Vertices and
// Elements are transient: Finish hands them to an Uploader and clears them.
type Mesh struct {
	Vertices   []Vertex
	Elements   []uint32
	FaceRanges [numFaces]FaceRange
}

const numFaces = 6

type face struct {
	normal mgl32.Vec3
	// integer normal for neighbor lookups
	ni [3]int
	// scan axes: k is the extend-first axis, j the second merge axis
	di, dj, dk [3]int
	corners    [4]mgl32.Vec3
}

var faces = [numFaces]face{
	// front (+z)
	{
		normal: mgl32.Vec3{0, 0, 1},
		ni:     [3]int{0, 0, 1},
		di:     [3]int{0, 0, 1}, dj: [3]int{1, 0, 0}, dk: [3]int{0, 1, 0},
		corners: [4]mgl32.Vec3{
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
		},
	},
	// back (-z)
	{
		normal: mgl32.Vec3{0, 0, -1},
		ni:     [3]int{0, 0, -1},
		di:     [3]int{0, 0, 1}, dj: [3]int{1, 0, 0}, dk: [3]int{0, 1, 0},
		corners: [4]mgl32.Vec3{
			{1, 0, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
	},
	// right (+x)
	{
		normal: mgl32.Vec3{1, 0, 0},
		ni:     [3]int{1, 0, 0},
		di:     [3]int{1, 0, 0}, dj: [3]int{0, 1, 0}, dk: [3]int{0, 0, 1},
		corners: [4]mgl32.Vec3{
			{1, 0, 1}, {1, 0, 0}, {1, 1, 1}, {1, 1, 0},
		},
	},
	// left (-x)
	{
		normal: mgl32.Vec3{-1, 0, 0},
		ni:     [3]int{-1, 0, 0},
		di:     [3]int{1, 0, 0}, dj: [3]int{0, 1, 0}, dk: [3]int{0, 0, 1},
		corners: [4]mgl32.Vec3{
			{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
		},
	},
	// top (+y)
	{
		normal: mgl32.Vec3{0, 1, 0},
		ni:     [3]int{0, 1, 0},
		di:     [3]int{0, 1, 0}, dj: [3]int{1, 0, 0}, dk: [3]int{0, 0, 1},
		corners: [4]mgl32.Vec3{
			{0, 1, 1}, {1, 1, 1}, {0, 1, 0}, {1, 1, 0},
		},
	},
	// bottom (-y)
	{
		normal: mgl32.Vec3{0, -1, 0},
		ni:     [3]int{0, -1, 0},
		di:     [3]int{0, 1, 0}, dj: [3]int{1, 0, 0}, dk: [3]int{0, 0, 1},
		corners: [4]mgl32.Vec3{
			{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1},
		},
	},
}

// two triangles per quad, relative to the quad's first vertex
var faceElements = [6]uint32{0, 1, 2, 3, 2, 1}

func maskIndex(x, y, z int) int {
	return (x*ChunkSize+y)*ChunkSize + z
}

// culled reports whether a face of block b is hidden by neighbor n. Water
// does not hide other blocks, but water-on-water faces are dropped so a lake
// meshes only its outer surface.
func culled(b, n Block) bool {
	if n.Opaque() {
		return true
	}
	return b == BlockWater && n == BlockWater
}

// BuildMesh produces the greedy-merged surface mesh of a terrain grid. Pure
// and deterministic: it depends only on block types and the halo.
func BuildMesh(t *Terrain) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, 4096),
		Elements: make([]uint32, 0, 6144),
	}

	for fi := range faces {
		f := &faces[fi]
		start := len(m.Elements)

		// Exposed faces for this direction, one bit per interior voxel. The
		// halo makes the neighbor lookup unconditional.
		exposed := level.NewBitStorage(1, ChunkSize*ChunkSize*ChunkSize, nil)
		for x := 0; x < ChunkSize; x++ {
			for y := 0; y < ChunkSize; y++ {
				for z := 0; z < ChunkSize; z++ {
					b := t.Get(x, y, z)
					if b == BlockAir {
						continue
					}
					if culled(b, t.Get(x+f.ni[0], y+f.ni[1], z+f.ni[2])) {
						continue
					}
					exposed.Set(maskIndex(x, y, z), 1)
				}
			}
		}

		// Sweep in fixed i,j,k order; every exposed voxel is covered by
		// exactly one merged rectangle.
		for i := 0; i < ChunkSize; i++ {
			for j := 0; j < ChunkSize; j++ {
				for k := 0; k < ChunkSize; k++ {
					x := f.di[0]*i + f.dj[0]*j + f.dk[0]*k
					y := f.di[1]*i + f.dj[1]*j + f.dk[1]*k
					z := f.di[2]*i + f.dj[2]*j + f.dk[2]*k

					if exposed.Get(maskIndex(x, y, z)) == 0 {
						continue
					}
					b := t.Get(x, y, z)

					// Extend along k first, then find the widest j run valid
					// across the whole k extent.
					lenK := runLength(t, exposed, x, y, z, f.dk, b)
					lenJ := ChunkSize
					for kk := 0; kk < lenK; kk++ {
						r := runLength(t, exposed,
							x+f.dk[0]*kk, y+f.dk[1]*kk, z+f.dk[2]*kk, f.dj, b)
						if r < lenJ {
							lenJ = r
						}
					}

					for kk := 0; kk < lenK; kk++ {
						for jj := 0; jj < lenJ; jj++ {
							exposed.Set(maskIndex(
								x+f.dk[0]*kk+f.dj[0]*jj,
								y+f.dk[1]*kk+f.dj[1]*jj,
								z+f.dk[2]*kk+f.dj[2]*jj), 0)
						}
					}

					var ext [3]float32
					for a := 0; a < 3; a++ {
						ext[a] = float32(1 + f.dk[a]*(lenK-1) + f.dj[a]*(lenJ-1))
					}

					off := uint32(len(m.Vertices))
					for _, corner := range f.corners {
						m.Vertices = append(m.Vertices, Vertex{
							Position: mgl32.Vec3{
								corner[0]*ext[0] + float32(x),
								corner[1]*ext[1] + float32(y),
								corner[2]*ext[2] + float32(z),
							},
							BlockType: float32(b),
						})
					}
					for _, e := range faceElements {
						m.Elements = append(m.Elements, off+e)
					}
				}
			}
		}

		m.FaceRanges[fi] = FaceRange{Start: start, Count: len(m.Elements) - start}
	}

	return m
}

// runLength counts how far a run of exposed, same-type voxels extends from
// (x,y,z) along dp, bounded by the chunk edge.
func runLength(t *Terrain, exposed *level.BitStorage, x, y, z int, dp [3]int, b Block) int {
	maxLen := dp[0]*(ChunkSize-x) + dp[1]*(ChunkSize-y) + dp[2]*(ChunkSize-z)

	length := 1
	for length < maxLen {
		x += dp[0]
		y += dp[1]
		z += dp[2]
		if exposed.Get(maskIndex(x, y, z)) == 0 || t.Get(x, y, z) != b {
			break
		}
		length++
	}
	return length
}

// Finish hands the completed CPU-side arrays to the buffer owner and
// releases them. Empty meshes are finished without an upload; calling Finish
// again after the arrays are cleared is a no-op.
func (m *Mesh) Finish(u Uploader) {
	if len(m.Elements) > 0 && u != nil {
		u.Upload(m)
	}
	m.Vertices = nil
	m.Elements = nil
}
