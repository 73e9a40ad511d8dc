package worldmesh

import (
	"sort"
	"testing"
)

func TestCoordOrigin(t *testing.T) {
	cases := []struct {
		c       Coord
		x, y, z int64
	}{
		{Coord{0, 0, 0, 0}, 0, 0, 0},
		{Coord{1, -2, 3, 0}, 32, -64, 96},
		{Coord{1, -2, 3, 1}, 64, -128, 192},
		{Coord{-1, -1, -1, 2}, -128, -128, -128},
	}
	for _, tc := range cases {
		x, y, z := tc.c.Origin()
		if x != tc.x || y != tc.y || z != tc.z {
			t.Fatalf("%v.Origin() = (%d,%d,%d), want (%d,%d,%d)", tc.c, x, y, z, tc.x, tc.y, tc.z)
		}
		if tc.c.Span() != ChunkSize<<tc.c.LOD {
			t.Fatalf("%v.Span() = %d", tc.c, tc.c.Span())
		}
	}
}

func TestCoordParent(t *testing.T) {
	cases := []struct {
		c, want Coord
	}{
		{Coord{0, 0, 0, 0}, Coord{0, 0, 0, 1}},
		{Coord{3, 2, 5, 0}, Coord{1, 1, 2, 1}},
		{Coord{-1, -2, -3, 0}, Coord{-1, -1, -2, 1}},
		{Coord{-4, 7, -5, 1}, Coord{-2, 3, -3, 2}},
	}
	for _, tc := range cases {
		if got := tc.c.Parent(); got != tc.want {
			t.Fatalf("%v.Parent() = %v, want %v", tc.c, got, tc.want)
		}
	}

	// the parent must always cover the child's origin
	for _, tc := range cases {
		px, py, pz := tc.c.Parent().Origin()
		cx, cy, cz := tc.c.Origin()
		span := tc.c.Parent().Span()
		if cx < px || cx >= px+span || cy < py || cy >= py+span || cz < pz || cz >= pz+span {
			t.Fatalf("parent of %v does not cover it", tc.c)
		}
	}
}

func TestCoordLess(t *testing.T) {
	coords := []Coord{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		{0, 0, 0, 0},
		{-1, 5, 5, 0},
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })

	want := []Coord{
		{-1, 5, 5, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{1, 0, 0, 0},
	}
	for i := range want {
		if coords[i] != want[i] {
			t.Fatalf("sorted order[%d] = %v, want %v", i, coords[i], want[i])
		}
	}

	for _, c := range want {
		if c.Less(c) {
			t.Fatalf("%v.Less(itself) = true", c)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{0, 32, 0},
		{31, 32, 0},
		{32, 32, 1},
		{-1, 32, -1},
		{-32, 32, -1},
		{-33, 32, -2},
	}
	for _, tc := range cases {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("floorDiv(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCoordHashSpread(t *testing.T) {
	seen := map[uint64]Coord{}
	for x := int64(-4); x <= 4; x++ {
		for y := int64(-4); y <= 4; y++ {
			for z := int64(-4); z <= 4; z++ {
				c := Coord{X: x, Y: y, Z: z}
				h := c.hash()
				if prev, ok := seen[h]; ok {
					t.Fatalf("hash collision between %v and %v", prev, c)
				}
				seen[h] = c
			}
		}
	}
}
