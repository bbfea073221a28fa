package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/skyswarm/config"
)

// Heightfield is a square terrain plane centered on the origin, displaced
// vertically by multi-octave OpenSimplex noise. It is generated once at setup
// and only sampled afterwards.
type Heightfield struct {
	size        float32
	half        float32
	vertsPerRow int
	step        float32
	heights     []float32 // row-major, z rows of x columns
}

// NewHeightfield generates terrain from config.
func NewHeightfield(cfg config.TerrainConfig) *Heightfield {
	subdiv := cfg.Subdivisions
	if subdiv < 1 {
		subdiv = 1
	}
	verts := subdiv + 1

	h := &Heightfield{
		size:        cfg.Size,
		half:        cfg.Size / 2,
		vertsPerRow: verts,
		step:        cfg.Size / float32(subdiv),
		heights:     make([]float32, verts*verts),
	}

	noise := opensimplex.New(cfg.Seed)
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}

	for row := 0; row < verts; row++ {
		z := -h.half + float32(row)*h.step
		for col := 0; col < verts; col++ {
			x := -h.half + float32(col)*h.step
			n := fbm(noise, float64(x)/scale, float64(z)/scale, cfg.Octaves, cfg.Lacunarity, cfg.Gain)
			h.heights[row*verts+col] = float32(n) * cfg.Height
		}
	}

	return h
}

// fbm sums octaves of noise and normalizes the result back to roughly [-1, 1].
func fbm(noise opensimplex.Noise, x, y float64, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float64
	freq, amp := 1.0, 1.0
	for o := 0; o < octaves; o++ {
		sum += noise.Eval2(x*freq, y*freq) * amp
		norm += amp
		freq *= lacunarity
		amp *= gain
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Size returns the plane edge length.
func (h *Heightfield) Size() float32 {
	return h.size
}

// VertsPerRow returns the number of vertices along each edge.
func (h *Heightfield) VertsPerRow() int {
	return h.vertsPerRow
}

// Vertex returns the world-space height at grid vertex (col, row).
func (h *Heightfield) Vertex(col, row int) float32 {
	return h.heights[row*h.vertsPerRow+col]
}

// Sample returns the bilinearly interpolated terrain height at (x, z).
// Points outside the plane sample the nearest edge.
func (h *Heightfield) Sample(x, z float32) float32 {
	maxIdx := float32(h.vertsPerRow - 1)
	fx := clampFloat((x+h.half)/h.step, 0, maxIdx)
	fz := clampFloat((z+h.half)/h.step, 0, maxIdx)

	col := int(fx)
	row := int(fz)
	if col >= h.vertsPerRow-1 {
		col = h.vertsPerRow - 2
	}
	if row >= h.vertsPerRow-1 {
		row = h.vertsPerRow - 2
	}
	tx := fx - float32(col)
	tz := fz - float32(row)

	h00 := h.Vertex(col, row)
	h10 := h.Vertex(col+1, row)
	h01 := h.Vertex(col, row+1)
	h11 := h.Vertex(col+1, row+1)

	return lerp(lerp(h00, h10, tx), lerp(h01, h11, tx), tz)
}
