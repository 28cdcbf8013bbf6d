package arena

import "testing"

func TestPointInPolygon(t *testing.T) {
	square := Polygon{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{0.99, 0.99, true},
		{1.5, 0, false},
		{0, -1.5, false},
		{-2, 2, false},
	}
	for _, tt := range tests {
		if got := PointInPolygon(tt.x, tt.y, square); got != tt.want {
			t.Errorf("(%v,%v): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	if PointInPolygon(0, 0, Polygon{{0, 0}, {1, 1}}) {
		t.Error("two-vertex polygon should contain nothing")
	}
}

func TestRoomGridAssignsAndTracks(t *testing.T) {
	g := NewGrid(400, 5, 20.0)
	left := Polygon{{-10, -10}, {0, -10}, {0, 10}, {-10, 10}}
	right := Polygon{{0, -10}, {10, -10}, {10, 10}, {0, 10}}
	rg := NewRoomGrid(g, []Polygon{left, right})

	ix, iy := g.WorldToCell(-5, 0)
	if room := rg.RoomAt(ix, iy); room != 0 {
		t.Errorf("(-5,0) in room %d, want 0", room)
	}
	ix, iy = g.WorldToCell(5, 0)
	if room := rg.RoomAt(ix, iy); room != 1 {
		t.Errorf("(5,0) in room %d, want 1", room)
	}

	pcts := rg.Percents()
	if pcts[0] != 0 || pcts[1] != 0 {
		t.Errorf("expected zero progress, got %v", pcts)
	}

	g.Clean(-5, 0, 5, rg.MarkCleaned)
	pcts = rg.Percents()
	if pcts[0] <= 0 {
		t.Error("room 0 should have progress after cleaning")
	}
	if pcts[1] != 0 {
		t.Errorf("room 1 untouched but has %v%%", pcts[1])
	}

	rg.Reset()
	if p := rg.Percents(); p[0] != 0 {
		t.Error("reset did not clear room progress")
	}
}

func TestRoomAtOutOfRange(t *testing.T) {
	g := NewGrid(100, 5, 20.0)
	rg := NewRoomGrid(g, nil)
	if rg.RoomAt(-1, 0) != -1 || rg.RoomAt(0, 1000) != -1 {
		t.Error("out-of-range cells should be roomless")
	}
}
