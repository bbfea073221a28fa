package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/skyswarm/config"
)

func smallTerrain(seed int64) config.TerrainConfig {
	cfg := config.MustLoad("").Terrain
	cfg.Seed = seed
	cfg.Subdivisions = 20
	return cfg
}

func TestHeightfieldDeterministic(t *testing.T) {
	a := NewHeightfield(smallTerrain(5))
	b := NewHeightfield(smallTerrain(5))

	for row := 0; row < a.VertsPerRow(); row++ {
		for col := 0; col < a.VertsPerRow(); col++ {
			if a.Vertex(col, row) != b.Vertex(col, row) {
				t.Fatalf("vertex (%d,%d) differs for the same seed", col, row)
			}
		}
	}
}

func TestHeightfieldSeedsDiffer(t *testing.T) {
	a := NewHeightfield(smallTerrain(1))
	b := NewHeightfield(smallTerrain(2))

	same := true
	for row := 0; row < a.VertsPerRow() && same; row++ {
		for col := 0; col < a.VertsPerRow(); col++ {
			if a.Vertex(col, row) != b.Vertex(col, row) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical terrain")
	}
}

func TestHeightfieldAmplitude(t *testing.T) {
	cfg := smallTerrain(3)
	h := NewHeightfield(cfg)

	limit := 2 * cfg.Height
	for row := 0; row < h.VertsPerRow(); row++ {
		for col := 0; col < h.VertsPerRow(); col++ {
			v := h.Vertex(col, row)
			if math.IsNaN(float64(v)) || v > limit || v < -limit {
				t.Fatalf("vertex (%d,%d) = %v outside +-%v", col, row, v, limit)
			}
		}
	}
}

func TestHeightfieldSample(t *testing.T) {
	cfg := smallTerrain(4)
	h := NewHeightfield(cfg)
	step := cfg.Size / float32(cfg.Subdivisions)
	half := cfg.Size / 2

	// Samples at vertices reproduce the vertex heights
	for _, v := range [][2]int{{0, 0}, {3, 7}, {10, 10}, {19, 2}} {
		x := -half + float32(v[0])*step
		z := -half + float32(v[1])*step
		got := h.Sample(x, z)
		want := h.Vertex(v[0], v[1])
		if math.Abs(float64(got-want)) > 1e-3 {
			t.Errorf("Sample at vertex %v = %v, want %v", v, got, want)
		}
	}

	// Midpoint of an edge is the average of its endpoints
	x := -half + 2.5*step
	z := -half + 4*step
	want := (h.Vertex(2, 4) + h.Vertex(3, 4)) / 2
	if got := h.Sample(x, z); math.Abs(float64(got-want)) > 1e-3 {
		t.Errorf("edge midpoint = %v, want %v", got, want)
	}

	// Far outside clamps to the corners
	if got := h.Sample(-1e6, -1e6); got != h.Vertex(0, 0) {
		t.Errorf("outside sample = %v, want corner %v", got, h.Vertex(0, 0))
	}
	last := h.VertsPerRow() - 1
	if got := h.Sample(1e6, 1e6); math.Abs(float64(got-h.Vertex(last, last))) > 1e-4 {
		t.Errorf("outside sample = %v, want corner %v", got, h.Vertex(last, last))
	}
}
