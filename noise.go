package worldmesh

import "math"

// Hash-gradient fractal noise. Every sample is a pure function of the seed
// and the input point, so terrain comes out bit-identical regardless of call
// order or which goroutine evaluates it.

type noiseField struct {
	seed        int64
	octaves     int
	frequency   float64
	lacunarity  float64
	persistence float64
}

// at evaluates the fractal sum at a world position.
func (n *noiseField) at(x, y, z float64) float64 {
	sum := 0.0
	amp := 1.0
	freq := n.frequency
	for o := 0; o < n.octaves; o++ {
		sum += gradientNoise(n.seed+int64(o)*1013, x*freq, y*freq, z*freq) * amp
		amp *= n.persistence
		freq *= n.lacunarity
	}
	return sum
}

// at2 evaluates the field on the y=0 plane, used for the height map.
func (n *noiseField) at2(x, z float64) float64 {
	return n.at(x, 0, z)
}

// gradientNoise is single-octave Perlin-style noise with gradients drawn
// from a seeded integer hash instead of a permutation table.
func gradientNoise(seed int64, x, y, z float64) float64 {
	xf := math.Floor(x)
	yf := math.Floor(y)
	zf := math.Floor(z)
	xi := int64(xf)
	yi := int64(yf)
	zi := int64(zf)

	fx := x - xf
	fy := y - yf
	fz := z - zf

	u := fade(fx)
	v := fade(fy)
	w := fade(fz)

	d000 := grad(hash3(seed, xi, yi, zi), fx, fy, fz)
	d100 := grad(hash3(seed, xi+1, yi, zi), fx-1, fy, fz)
	d010 := grad(hash3(seed, xi, yi+1, zi), fx, fy-1, fz)
	d110 := grad(hash3(seed, xi+1, yi+1, zi), fx-1, fy-1, fz)
	d001 := grad(hash3(seed, xi, yi, zi+1), fx, fy, fz-1)
	d101 := grad(hash3(seed, xi+1, yi, zi+1), fx-1, fy, fz-1)
	d011 := grad(hash3(seed, xi, yi+1, zi+1), fx, fy-1, fz-1)
	d111 := grad(hash3(seed, xi+1, yi+1, zi+1), fx-1, fy-1, fz-1)

	return lerp(
		lerp(lerp(d000, d100, u), lerp(d010, d110, u), v),
		lerp(lerp(d001, d101, u), lerp(d011, d111, u), v),
		w)
}

func hash3(seed int64, x, y, z int64) uint64 {
	v := uint64(seed) ^
		uint64(x)*0x9e3779b97f4a7c15 ^
		uint64(y)*0xc2b2ae3d27d4eb4f ^
		uint64(z)*0xbf58476d1ce4e5b9
	return mix64(v)
}

// grad projects the cell offset onto one of 16 fixed gradient directions.
func grad(h uint64, x, y, z float64) float64 {
	switch h & 15 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x + z
	case 5:
		return -x + z
	case 6:
		return x - z
	case 7:
		return -x - z
	case 8:
		return y + z
	case 9:
		return -y + z
	case 10:
		return y - z
	case 11:
		return -y - z
	case 12:
		return x + y
	case 13:
		return -y + z
	case 14:
		return -x + y
	default:
		return -y - z
	}
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
