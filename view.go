package worldmesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewConfig bounds the wanted-chunk enumeration around an eye position.
type ViewConfig struct {
	// Radius is the view distance in chunks.
	Radius int
	// LODScale is the chunk distance per LOD step; 0 disables LOD entirely.
	LODScale float64
	MaxLOD   uint8
}

// EyeChunk maps a world-space eye position to its LOD-0 chunk cell.
func EyeChunk(eye mgl32.Vec3) Coord {
	return Coord{
		X: floorDiv(int64(math.Floor(float64(eye.X()))), ChunkSize),
		Y: floorDiv(int64(math.Floor(float64(eye.Y()))), ChunkSize),
		Z: floorDiv(int64(math.Floor(float64(eye.Z()))), ChunkSize),
	}
}

func (c Coord) atLOD(lod uint8) Coord {
	return Coord{X: c.X >> lod, Y: c.Y >> lod, Z: c.Z >> lod, LOD: lod}
}

// VisibleCoords enumerates the chunk coordinates within the view radius of
// the eye's chunk, nearest first. Membership uses squared distance, so no
// square root is taken to decide inclusion. When LOD is enabled, distant
// cells collapse onto their coarser-grid coordinate and each coarse chunk is
// reported once with the smallest distance of any cell it covers. Distance
// ties break by coordinate order, so the result is reproducible for a fixed
// eye and config.
func VisibleCoords(eye mgl32.Vec3, cfg ViewConfig) []Coord {
	center := EyeChunk(eye)
	r := int64(cfg.Radius)

	best := make(map[Coord]int64)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				distSq := dx*dx + dy*dy + dz*dz
				if distSq > r*r {
					continue
				}

				c := Coord{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				if cfg.LODScale > 0 {
					// clamp before narrowing: an out-of-range float→uint8
					// conversion wraps instead of saturating
					lod := cfg.MaxLOD
					if v := math.Sqrt(float64(distSq)) / cfg.LODScale; v < float64(cfg.MaxLOD) {
						lod = uint8(v)
					}
					c = c.atLOD(lod)
				}

				if prev, ok := best[c]; !ok || distSq < prev {
					best[c] = distSq
				}
			}
		}
	}

	out := make([]Coord, 0, len(best))
	for c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := best[out[i]], best[out[j]]
		if di != dj {
			return di < dj
		}
		return out[i].Less(out[j])
	})
	return out
}
