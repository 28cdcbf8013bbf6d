package arena

import (
	"math"
	"testing"
)

func TestWorldToCellCenterRoundTrip(t *testing.T) {
	g := NewGrid(400, 5, 20.0)

	tests := []struct{ x, y float64 }{
		{0, 0},
		{9.9, 9.9},
		{-9.9, -9.9},
		{1.8761, -6.3738},
	}
	for _, tt := range tests {
		ix, iy := g.WorldToCell(tt.x, tt.y)
		wx, wy := g.CellCenterToWorld(ix, iy)
		// Cell centers are within half a cell of the original point.
		halfCell := 20.0 / float64(400/5) / 2
		if math.Abs(wx-tt.x) > halfCell || math.Abs(wy-tt.y) > halfCell {
			t.Errorf("(%v,%v) -> cell (%d,%d) -> (%v,%v)", tt.x, tt.y, ix, iy, wx, wy)
		}
	}
}

func TestCleanStampsCircle(t *testing.T) {
	g := NewGrid(400, 5, 20.0)

	newly := g.Clean(0, 0, 5, nil)
	if newly == 0 {
		t.Fatal("expected cells cleaned")
	}
	if g.CleanedRatio() <= 0 {
		t.Error("cleaned ratio should be positive")
	}

	// Same spot again: nothing new.
	if again := g.Clean(0, 0, 5, nil); again != 0 {
		t.Errorf("expected 0 newly cleaned, got %d", again)
	}
}

func TestCleanOutOfBounds(t *testing.T) {
	g := NewGrid(400, 5, 20.0)
	// Far outside the ground: must not panic, cleans nothing in range only.
	g.Clean(100, 100, 5, nil)
	if g.CleanedRatio() != 0 {
		t.Errorf("expected no cells cleaned out of bounds, ratio %v", g.CleanedRatio())
	}
}

func TestCleanCallbackAndReset(t *testing.T) {
	g := NewGrid(400, 5, 20.0)
	var seen int
	g.Clean(1, 1, 5, func(ix, iy int) { seen++ })
	if seen == 0 {
		t.Error("expected callback for newly cleaned cells")
	}
	ix, iy := g.WorldToCell(1, 1)
	if !g.IsCleaned(ix, iy) {
		t.Error("center cell should be cleaned")
	}

	g.Reset()
	if g.CleanedRatio() != 0 || g.IsCleaned(ix, iy) {
		t.Error("reset did not clear the grid")
	}
}
