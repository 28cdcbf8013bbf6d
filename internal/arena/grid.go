package arena

// Grid tracks which patches of the ground have been cleaned. The ground is a
// square of sizeMeters a side, rendered on a square display of sizePixels;
// cells are cellSize pixels. World coordinates are centered: x right,
// y up, so pixel y grows downward.
type Grid struct {
	cells      [][]bool
	cellSize   int
	sizePixels int
	sizeMeters float64
	cleaned    int
}

func NewGrid(sizePixels, cellSize int, sizeMeters float64) *Grid {
	n := sizePixels / cellSize
	cells := make([][]bool, n)
	for i := range cells {
		cells[i] = make([]bool, n)
	}
	return &Grid{
		cells:      cells,
		cellSize:   cellSize,
		sizePixels: sizePixels,
		sizeMeters: sizeMeters,
	}
}

func (g *Grid) Cols() int { return len(g.cells[0]) }
func (g *Grid) Rows() int { return len(g.cells) }

func (g *Grid) WorldToCell(x, y float64) (ix, iy int) {
	px := float64(g.sizePixels) * (x + g.sizeMeters/2) / g.sizeMeters
	py := float64(g.sizePixels) * (-y + g.sizeMeters/2) / g.sizeMeters
	return int(px) / g.cellSize, int(py) / g.cellSize
}

func (g *Grid) CellCenterToWorld(ix, iy int) (x, y float64) {
	px := (float64(ix) + 0.5) * float64(g.cellSize)
	py := (float64(iy) + 0.5) * float64(g.cellSize)
	x = (px/float64(g.sizePixels))*g.sizeMeters - g.sizeMeters/2
	y = g.sizeMeters/2 - (py/float64(g.sizePixels))*g.sizeMeters
	return x, y
}

// Clean stamps a circle of radiusPx around world position (x, y), calling
// onCell for every cell newly cleaned. Returns the number of new cells.
func (g *Grid) Clean(x, y float64, radiusPx int, onCell func(ix, iy int)) int {
	ix, iy := g.WorldToCell(x, y)
	cellRadius := (radiusPx + g.cellSize - 1) / g.cellSize

	newly := 0
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			pxOff := dx * g.cellSize
			pyOff := dy * g.cellSize
			if pxOff*pxOff+pyOff*pyOff > radiusPx*radiusPx {
				continue
			}
			cx, cy := ix+dx, iy+dy
			if cx < 0 || cx >= g.Cols() || cy < 0 || cy >= g.Rows() {
				continue
			}
			if g.cells[cy][cx] {
				continue
			}
			g.cells[cy][cx] = true
			g.cleaned++
			newly++
			if onCell != nil {
				onCell(cx, cy)
			}
		}
	}
	return newly
}

func (g *Grid) IsCleaned(ix, iy int) bool {
	if ix < 0 || ix >= g.Cols() || iy < 0 || iy >= g.Rows() {
		return false
	}
	return g.cells[iy][ix]
}

func (g *Grid) CleanedRatio() float64 {
	total := g.Rows() * g.Cols()
	if total == 0 {
		return 0
	}
	return float64(g.cleaned) / float64(total)
}

func (g *Grid) Reset() {
	for iy := range g.cells {
		for ix := range g.cells[iy] {
			g.cells[iy][ix] = false
		}
	}
	g.cleaned = 0
}
