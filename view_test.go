package worldmesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEyeChunk(t *testing.T) {
	cases := []struct {
		eye  mgl32.Vec3
		want Coord
	}{
		{mgl32.Vec3{0, 0, 0}, Coord{0, 0, 0, 0}},
		{mgl32.Vec3{31.9, 31.9, 31.9}, Coord{0, 0, 0, 0}},
		{mgl32.Vec3{32, 0, 0}, Coord{1, 0, 0, 0}},
		{mgl32.Vec3{-0.5, -0.5, -0.5}, Coord{-1, -1, -1, 0}},
		{mgl32.Vec3{-32, -33, 64}, Coord{-1, -2, 2, 0}},
	}
	for _, tc := range cases {
		if got := EyeChunk(tc.eye); got != tc.want {
			t.Fatalf("EyeChunk(%v) = %v, want %v", tc.eye, got, tc.want)
		}
	}
}

func chunkDistSq(c, center Coord) int64 {
	dx := c.X - center.X
	dy := c.Y - center.Y
	dz := c.Z - center.Z
	return dx*dx + dy*dy + dz*dz
}

func TestVisibleCoordsOrdering(t *testing.T) {
	eye := mgl32.Vec3{100, -40, 100}
	center := EyeChunk(eye)
	cfg := ViewConfig{Radius: 2}

	coords := VisibleCoords(eye, cfg)
	if len(coords) == 0 {
		t.Fatalf("no visible coordinates at radius 2")
	}
	if coords[0] != center {
		t.Fatalf("nearest coordinate is %v, want the eye chunk %v", coords[0], center)
	}

	seen := map[Coord]bool{}
	prev := int64(-1)
	for _, c := range coords {
		if seen[c] {
			t.Fatalf("coordinate %v reported twice", c)
		}
		seen[c] = true

		d := chunkDistSq(c, center)
		if d > 4 {
			t.Fatalf("coordinate %v outside the view radius (distSq %d)", c, d)
		}
		if d < prev {
			t.Fatalf("coordinates not ordered nearest first: distSq %d after %d", d, prev)
		}
		prev = d
	}

	again := VisibleCoords(eye, cfg)
	if len(again) != len(coords) {
		t.Fatalf("enumeration is not reproducible")
	}
	for i := range coords {
		if coords[i] != again[i] {
			t.Fatalf("coordinate %d differs between runs: %v vs %v", i, coords[i], again[i])
		}
	}
}

func TestVisibleCoordsLOD(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 0}
	cfg := ViewConfig{Radius: 6, LODScale: 2, MaxLOD: 2}

	coords := VisibleCoords(eye, cfg)

	seen := map[Coord]bool{}
	sawCoarse := false
	for _, c := range coords {
		if seen[c] {
			t.Fatalf("coarse coordinate %v reported twice", c)
		}
		seen[c] = true
		if c.LOD > cfg.MaxLOD {
			t.Fatalf("coordinate %v exceeds max LOD %d", c, cfg.MaxLOD)
		}
		if c.LOD > 0 {
			sawCoarse = true
		}
	}
	if !sawCoarse {
		t.Fatalf("radius 6 with scale 2 should produce coarse coordinates")
	}

	// the eye's own cell stays at full detail
	if coords[0] != (Coord{0, 0, 0, 0}) {
		t.Fatalf("eye cell is %v, want full-detail origin", coords[0])
	}
}

func TestVisibleCoordsLODClamp(t *testing.T) {
	// a scale this small pushes distance/scale past 255 inside the radius,
	// so narrowing before the clamp would wrap to a bogus fine level
	coords := VisibleCoords(mgl32.Vec3{}, ViewConfig{Radius: 14, LODScale: 0.05, MaxLOD: 255})
	for _, c := range coords {
		if c.LOD == 0 && c != (Coord{}) {
			t.Fatalf("non-center coord %v at full detail", c)
		}
		// the nearest non-center cell is at distance 1, level 20; anything
		// finer can only come from a wrapped conversion
		if c.LOD != 0 && c.LOD < 20 {
			t.Fatalf("coord %v has LOD %d, finer than any cell can derive", c, c.LOD)
		}
	}

	coords = VisibleCoords(mgl32.Vec3{}, ViewConfig{Radius: 14, LODScale: 0.05, MaxLOD: 2})
	for _, c := range coords {
		if c != (Coord{}) && c.LOD != 2 {
			t.Fatalf("coord %v escaped the max LOD clamp", c)
		}
	}
}

func TestVisibleCoordsZeroRadius(t *testing.T) {
	coords := VisibleCoords(mgl32.Vec3{5, 5, 5}, ViewConfig{Radius: 0})
	if len(coords) != 1 || coords[0] != (Coord{0, 0, 0, 0}) {
		t.Fatalf("radius 0 should yield only the eye chunk, got %v", coords)
	}
}
