package arena

// Polygon is a room outline in world coordinates.
type Polygon [][2]float64

// PointInPolygon uses ray casting; polygons with fewer than 3 vertices
// contain nothing.
func PointInPolygon(px, py float64, poly Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// RoomGrid assigns each grid cell to a room (or -1) and tracks per-room
// cleaning progress.
type RoomGrid struct {
	rooms   [][]int
	total   []int
	cleaned []int
}

func NewRoomGrid(g *Grid, polys []Polygon) *RoomGrid {
	rg := &RoomGrid{
		rooms:   make([][]int, g.Rows()),
		total:   make([]int, len(polys)),
		cleaned: make([]int, len(polys)),
	}
	for iy := 0; iy < g.Rows(); iy++ {
		rg.rooms[iy] = make([]int, g.Cols())
		for ix := 0; ix < g.Cols(); ix++ {
			rg.rooms[iy][ix] = -1
			wx, wy := g.CellCenterToWorld(ix, iy)
			for r, poly := range polys {
				if PointInPolygon(wx, wy, poly) {
					rg.rooms[iy][ix] = r
					rg.total[r]++
					break
				}
			}
		}
	}
	return rg
}

func (rg *RoomGrid) RoomAt(ix, iy int) int {
	if iy < 0 || iy >= len(rg.rooms) || ix < 0 || ix >= len(rg.rooms[iy]) {
		return -1
	}
	return rg.rooms[iy][ix]
}

func (rg *RoomGrid) MarkCleaned(ix, iy int) {
	if r := rg.RoomAt(ix, iy); r >= 0 {
		rg.cleaned[r]++
	}
}

func (rg *RoomGrid) Percents() []float64 {
	pcts := make([]float64, len(rg.total))
	for r := range rg.total {
		if rg.total[r] > 0 {
			pcts[r] = 100 * float64(rg.cleaned[r]) / float64(rg.total[r])
		}
	}
	return pcts
}

func (rg *RoomGrid) Reset() {
	for r := range rg.cleaned {
		rg.cleaned[r] = 0
	}
}
